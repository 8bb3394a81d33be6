package pipeline

import (
	"context"
	"fmt"

	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/leads"
)

// Action is the terminal outcome of one pipeline pass
type Action string

const (
	ActionIgnored   Action = "ignored"
	ActionEscalated Action = "escalated"
	ActionReplied   Action = "replied"
)

// Request is one inbound comment handed to the pipeline by the
// ingestion collaborator
type Request struct {
	CommentID string          `json:"commentId"`
	UserID    string          `json:"userId"`
	Text      string          `json:"commentText"`
	Platform  models.Platform `json:"platform"`
}

// Validate rejects payloads with missing required fields before any
// external call is made
func (r Request) Validate() error {
	if r.CommentID == "" {
		return fmt.Errorf("commentId is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("userId is required")
	}
	if r.Text == "" {
		return fmt.Errorf("commentText is required")
	}
	if r.Platform == "" {
		return fmt.Errorf("platform is required")
	}
	return nil
}

// ReplyResult describes the generated reply returned to the caller
type ReplyResult struct {
	ID              string            `json:"id"`
	Text            string            `json:"text"`
	Tone            models.Tone       `json:"tone"`
	Language        string            `json:"language"`
	Sentiment       string            `json:"sentiment"`
	IsSalesLead     bool              `json:"is_sales_lead"`
	LeadTemperature leads.Temperature `json:"lead_temperature"`
}

// Decision is the structured outcome of one pipeline pass
type Decision struct {
	Action Action       `json:"action"`
	Reason string       `json:"reason,omitempty"`
	Reply  *ReplyResult `json:"reply,omitempty"`
}

// SettingsSource reads the per-user policy the pipeline applies
type SettingsSource interface {
	GetSettings(ctx context.Context, userID string) (*models.AutoReplySettings, error)
}

// CommentLedger mutates comment rows with targeted field updates
type CommentLedger interface {
	UpdateComment(ctx context.Context, id string, fields map[string]interface{}) error
}

// ReplyLedger persists generated replies
type ReplyLedger interface {
	InsertAutoReply(ctx context.Context, reply *models.AutoReply) error
}
