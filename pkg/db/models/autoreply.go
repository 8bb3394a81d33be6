package models

import (
	"time"
)

// ReplyStatus tracks delivery of a generated reply to the platform
type ReplyStatus string

const (
	ReplyStatusPending ReplyStatus = "pending"
	ReplyStatusSent    ReplyStatus = "sent"
	ReplyStatusFailed  ReplyStatus = "failed"
)

// ReplyOrigin records whether a reply was machine- or human-written
type ReplyOrigin string

const (
	ReplyOriginAI    ReplyOrigin = "ai"
	ReplyOriginHuman ReplyOrigin = "human"
)

// AutoReply is one generated reply persisted by the pipeline. The
// unique index on CommentID guarantees at most one reply per comment
// even when two pipeline runs race on the same comment identifier.
type AutoReply struct {
	ID        string      `gorm:"primaryKey;column:id" json:"id"`
	CommentID string      `gorm:"column:comment_id;not null;uniqueIndex:idx_auto_replies_comment_id" json:"comment_id"`
	Text      string      `gorm:"column:text;not null" json:"text"`
	Tone      Tone        `gorm:"column:tone;type:reply_tone;not null" json:"tone"`
	Language  string      `gorm:"column:language;not null" json:"language"`
	Status    ReplyStatus `gorm:"column:status;type:reply_status;not null;default:pending" json:"status"`
	CreatedBy ReplyOrigin `gorm:"column:created_by;type:reply_origin;not null;default:ai" json:"created_by"`
	CreatedAt time.Time   `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time   `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for the AutoReply model
func (AutoReply) TableName() string {
	return "auto_replies"
}
