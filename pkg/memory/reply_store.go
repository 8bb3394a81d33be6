package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/replyloop/engine-go/pkg/db/models"
)

// ReplyStore persists generated replies and feeds the delivery loop
type ReplyStore struct {
	logger *logrus.Logger
	db     *gorm.DB
}

func NewReplyStore(logger *logrus.Logger, db *gorm.DB) *ReplyStore {
	return &ReplyStore{
		logger: logger,
		db:     db,
	}
}

// InsertAutoReply creates a new reply row. The unique index on
// comment_id makes a duplicate pipeline run for the same comment fail
// here instead of minting a second reply.
func (s *ReplyStore) InsertAutoReply(ctx context.Context, reply *models.AutoReply) error {
	s.logger.WithFields(logrus.Fields{
		"reply_id":   reply.ID,
		"comment_id": reply.CommentID,
		"tone":       reply.Tone,
	}).Debug("Inserting auto reply")

	if err := s.db.WithContext(ctx).Create(reply).Error; err != nil {
		return fmt.Errorf("failed to insert auto reply for comment %s: %w", reply.CommentID, err)
	}

	return nil
}

// PendingReply is one undelivered reply joined with the comment fields
// the delivery loop needs
type PendingReply struct {
	ReplyID   string          `gorm:"column:reply_id"`
	CommentID string          `gorm:"column:comment_id"`
	Text      string          `gorm:"column:text"`
	Platform  models.Platform `gorm:"column:platform"`
	IsLiked   bool            `gorm:"column:is_liked"`
}

// RecallPendingReplies returns up to limit replies still waiting for
// platform delivery, oldest first
func (s *ReplyStore) RecallPendingReplies(ctx context.Context, limit int) ([]PendingReply, error) {
	var pending []PendingReply
	err := s.db.WithContext(ctx).
		Table("auto_replies").
		Select("auto_replies.id AS reply_id, auto_replies.comment_id, auto_replies.text, comments.platform, comments.is_liked").
		Joins("JOIN comments ON comments.id = auto_replies.comment_id").
		Where("auto_replies.status = ?", models.ReplyStatusPending).
		Order("auto_replies.created_at ASC").
		Limit(limit).
		Scan(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to recall pending replies: %w", err)
	}

	s.logger.WithField("pending_count", len(pending)).Debug("Recalled pending replies")
	return pending, nil
}

// MarkReplySent transitions a reply to sent after platform delivery
func (s *ReplyStore) MarkReplySent(ctx context.Context, replyID string) error {
	return s.setReplyStatus(ctx, replyID, models.ReplyStatusSent)
}

// MarkReplyFailed transitions a reply to failed after delivery gave up
func (s *ReplyStore) MarkReplyFailed(ctx context.Context, replyID string) error {
	return s.setReplyStatus(ctx, replyID, models.ReplyStatusFailed)
}

func (s *ReplyStore) setReplyStatus(ctx context.Context, replyID string, status models.ReplyStatus) error {
	result := s.db.WithContext(ctx).
		Model(&models.AutoReply{}).
		Where("id = ?", replyID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark reply %s as %s: %w", replyID, status, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
