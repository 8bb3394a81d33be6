package models

import (
	"time"

	"github.com/lib/pq"
)

// Tone is the requested voice for generated replies
type Tone string

const (
	ToneHype     Tone = "hype"
	ToneFunny    Tone = "funny"
	ToneFormal   Tone = "formal"
	TonePolite   Tone = "polite"
	ToneAngry    Tone = "angry"
	ToneSavage   Tone = "savage"
	ToneRoasting Tone = "roasting"
)

// AutoReplySettings holds per-user reply policy. Exactly one active
// record exists per user; the pipeline only ever reads it.
type AutoReplySettings struct {
	ID              uint   `gorm:"primaryKey;column:id" json:"id"`
	UserID          string `gorm:"column:user_id;not null;uniqueIndex:idx_auto_reply_settings_user_id" json:"user_id"`
	DefaultTone     Tone   `gorm:"column:default_tone;type:reply_tone;not null;default:polite" json:"default_tone"`
	DefaultLanguage string `gorm:"column:default_language;not null;default:english" json:"default_language"`

	// Policy flags
	IgnoreSpam         bool `gorm:"column:ignore_spam;default:true" json:"ignore_spam"`
	IgnoreHateComments bool `gorm:"column:ignore_hate_comments;default:true" json:"ignore_hate_comments"`
	AutoLikePositive   bool `gorm:"column:auto_like_positive;default:false" json:"auto_like_positive"`
	ReplyToComments    bool `gorm:"column:reply_to_comments;default:true" json:"reply_to_comments"`
	ReplyToDMs         bool `gorm:"column:reply_to_dms;default:false" json:"reply_to_dms"`

	// Optional style material fed into the generator prompt
	Catchphrases     pq.StringArray `gorm:"column:catchphrases;type:text[]" json:"catchphrases"`
	SignatureEmojis  pq.StringArray `gorm:"column:signature_emojis;type:text[]" json:"signature_emojis"`
	BlacklistedWords pq.StringArray `gorm:"column:blacklisted_words;type:text[]" json:"blacklisted_words"`
	IntroLine        string         `gorm:"column:intro_line" json:"intro_line"`
	OutroLine        string         `gorm:"column:outro_line" json:"outro_line"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for the AutoReplySettings model
func (AutoReplySettings) TableName() string {
	return "auto_reply_settings"
}
