package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/replyloop/engine-go/pkg/db/models"
)

// ErrCommentNotFound is returned when an update targets a comment id
// that does not exist in the ledger
var ErrCommentNotFound = errors.New("comment not found")

// CommentStore persists pipeline decisions onto comment rows
type CommentStore struct {
	logger *logrus.Logger
	db     *gorm.DB
}

func NewCommentStore(logger *logrus.Logger, db *gorm.DB) *CommentStore {
	return &CommentStore{
		logger: logger,
		db:     db,
	}
}

// GetComment loads a single comment by id
func (s *CommentStore) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment %s: %w", id, err)
	}
	return &comment, nil
}

// UpdateComment applies a targeted field-level update keyed by primary
// id. Field-level updates keep concurrent pipelines on unrelated
// comments from clobbering each other with full-row writes.
func (s *CommentStore) UpdateComment(ctx context.Context, id string, fields map[string]interface{}) error {
	s.logger.WithFields(logrus.Fields{
		"comment_id": id,
		"fields":     fields,
	}).Debug("Updating comment")

	fields["updated_at"] = time.Now()

	result := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update comment %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}
