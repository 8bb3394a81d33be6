package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/replyloop/engine-go/pkg/db/models"
)

// ErrSettingsNotFound is returned when a user has no auto-reply
// settings record. The pipeline treats this as a hard failure.
var ErrSettingsNotFound = errors.New("auto-reply settings not found")

// ErrBrandVoiceNotFound is returned when a user has no brand voice
// record
var ErrBrandVoiceNotFound = errors.New("brand voice not found")

// SettingsStore reads and updates per-user configuration. The
// pipeline only reads; the HTTP surface owns the writes.
type SettingsStore struct {
	logger *logrus.Logger
	db     *gorm.DB
}

func NewSettingsStore(logger *logrus.Logger, db *gorm.DB) *SettingsStore {
	return &SettingsStore{
		logger: logger,
		db:     db,
	}
}

// GetSettings loads the single active settings record for a user
func (s *SettingsStore) GetSettings(ctx context.Context, userID string) (*models.AutoReplySettings, error) {
	var settings models.AutoReplySettings
	err := s.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load settings for user %s: %w", userID, err)
	}
	return &settings, nil
}

// GetBrandVoice loads the brand voice record for a user
func (s *SettingsStore) GetBrandVoice(ctx context.Context, userID string) (*models.BrandVoice, error) {
	var voice models.BrandVoice
	err := s.db.WithContext(ctx).First(&voice, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandVoiceNotFound
		}
		return nil, fmt.Errorf("failed to load brand voice for user %s: %w", userID, err)
	}
	return &voice, nil
}

// UpsertSettings creates or replaces the user's settings record,
// keeping exactly one active record per user
func (s *SettingsStore) UpsertSettings(ctx context.Context, settings *models.AutoReplySettings) error {
	s.logger.WithField("user_id", settings.UserID).Debug("Upserting auto-reply settings")

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"default_tone", "default_language",
				"ignore_spam", "ignore_hate_comments", "auto_like_positive",
				"reply_to_comments", "reply_to_dms",
				"catchphrases", "signature_emojis", "blacklisted_words",
				"intro_line", "outro_line", "updated_at",
			}),
		}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to upsert settings for user %s: %w", settings.UserID, err)
	}

	return nil
}

// UpsertBrandVoice creates or replaces the user's brand voice record
func (s *SettingsStore) UpsertBrandVoice(ctx context.Context, voice *models.BrandVoice) error {
	s.logger.WithField("user_id", voice.UserID).Debug("Upserting brand voice")

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"brand_name", "brand_values", "personality_traits", "updated_at",
			}),
		}).
		Create(voice).Error
	if err != nil {
		return fmt.Errorf("failed to upsert brand voice for user %s: %w", voice.UserID, err)
	}

	return nil
}
