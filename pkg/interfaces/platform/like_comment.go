package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/db/models"
)

// LikeComment delivers a recorded like intent to the source platform
func (c *Client) LikeComment(ctx context.Context, commentID string, p models.Platform) error {
	if commentID == "" {
		return fmt.Errorf("comment id is required")
	}

	payload := map[string]interface{}{
		"comment_id": commentID,
		"platform":   p,
	}

	resp, err := c.makeRequest(ctx, http.MethodPost, c.config.LikesEndpoint, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.handleResponse(resp); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"comment_id": commentID,
		"platform":   p,
	}).Info("Liked comment on platform")

	return nil
}
