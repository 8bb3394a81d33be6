package models

import (
	"time"
)

// Platform identifies the social network a comment came from
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
)

// CommentStatus tracks how the decision pipeline treated a comment.
// A comment moves forward only: pending -> ignored | escalated | replied.
type CommentStatus string

const (
	CommentStatusPending   CommentStatus = "pending"
	CommentStatusReplied   CommentStatus = "replied"
	CommentStatusIgnored   CommentStatus = "ignored"
	CommentStatusEscalated CommentStatus = "escalated"
)

// SentimentCategory is the classifier's verdict for a comment
type SentimentCategory string

const (
	SentimentPositive SentimentCategory = "positive"
	SentimentNegative SentimentCategory = "negative"
	SentimentNeutral  SentimentCategory = "neutral"
	SentimentQuestion SentimentCategory = "question"
	SentimentSpam     SentimentCategory = "spam"
	SentimentHate     SentimentCategory = "hate"
)

// Comment represents one inbound comment as stored in the ledger.
// Sentiment is a plain string column rather than the enum type because
// lead detection rewrites it to a composite "<sentiment>_lead_<temp>"
// tag after a reply goes out.
type Comment struct {
	ID       string   `gorm:"primaryKey;column:id" json:"id"`
	UserID   string   `gorm:"column:user_id;not null;index" json:"user_id"`
	Platform Platform `gorm:"column:platform;type:comment_platform;not null" json:"platform"`
	Text     string   `gorm:"column:text;not null" json:"text"`

	// Classification metadata, null until the pipeline has run
	Sentiment      *string  `gorm:"column:sentiment" json:"sentiment"`
	SentimentScore *float64 `gorm:"column:sentiment_score" json:"sentiment_score"`

	// Recorded intent only; delivery of the actual like is asynchronous
	IsLiked bool `gorm:"column:is_liked;default:false" json:"is_liked"`

	Status    CommentStatus `gorm:"column:status;type:comment_status;not null;default:pending" json:"status"`
	CreatedAt time.Time     `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}
