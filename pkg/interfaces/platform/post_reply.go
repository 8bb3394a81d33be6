package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/db/models"
)

// PostReplyParams holds the parameters for posting a reply under a
// platform comment
type PostReplyParams struct {
	// CommentID is the platform-side comment being replied to
	CommentID string

	// Platform selects which network the comment lives on
	Platform models.Platform

	// Text is the reply body
	Text string
}

// PostedReply is the platform's acknowledgment of a posted reply
type PostedReply struct {
	ID        string `json:"id"`
	CommentID string `json:"comment_id"`
	Text      string `json:"text"`
}

// PostReply posts a reply under a comment on the source platform
func (c *Client) PostReply(ctx context.Context, params PostReplyParams) (*PostedReply, error) {
	if params.CommentID == "" {
		return nil, fmt.Errorf("comment id is required")
	}
	if params.Text == "" {
		return nil, fmt.Errorf("reply text is required")
	}

	payload := map[string]interface{}{
		"comment_id": params.CommentID,
		"platform":   params.Platform,
		"text":       params.Text,
	}

	endpoint := fmt.Sprintf("%s/%s/replies", c.config.CommentsEndpoint, params.CommentID)
	resp, err := c.makeRequest(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.handleResponse(resp); err != nil {
		return nil, err
	}

	var result struct {
		Data PostedReply `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode reply response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"comment_id": params.CommentID,
		"reply_id":   result.Data.ID,
		"platform":   params.Platform,
	}).Info("Posted reply to platform")

	return &result.Data, nil
}
