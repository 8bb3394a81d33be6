package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/interfaces/platform"
	"github.com/replyloop/engine-go/pkg/memory"
)

// PlatformPoster is the slice of the platform client the deliverer
// needs
type PlatformPoster interface {
	PostReply(ctx context.Context, params platform.PostReplyParams) (*platform.PostedReply, error)
	LikeComment(ctx context.Context, commentID string, p models.Platform) error
}

// DeliveryStore is the slice of the reply store the deliverer needs
type DeliveryStore interface {
	RecallPendingReplies(ctx context.Context, limit int) ([]memory.PendingReply, error)
	MarkReplySent(ctx context.Context, replyID string) error
	MarkReplyFailed(ctx context.Context, replyID string) error
}

// DeliveryConfig holds batch and rate-limit settings for delivery
type DeliveryConfig struct {
	BatchSize         int
	MaxRetries        int
	RetryDelay        time.Duration
	RateLimitWindow   time.Duration
	RepliesPerWindow  int
	RateLimitCooldown time.Duration
}

// DefaultDeliveryConfig returns conservative defaults well under the
// platforms' write limits
func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		BatchSize:         25,
		MaxRetries:        3,
		RetryDelay:        30 * time.Second,
		RateLimitWindow:   15 * time.Minute,
		RepliesPerWindow:  45,
		RateLimitCooldown: 5 * time.Minute,
	}
}

// ReplyDeliverer drains pending AutoReplies to the platform. The
// pipeline only records intent; this loop owns actual delivery and
// the pending -> sent|failed transition.
type ReplyDeliverer struct {
	store   DeliveryStore
	client  PlatformPoster
	logger  *logrus.Logger
	limiter *rate.Limiter
	config  DeliveryConfig
}

func NewReplyDeliverer(store DeliveryStore, client PlatformPoster, logger *logrus.Logger, config DeliveryConfig) *ReplyDeliverer {
	r := rate.Every(config.RateLimitWindow / time.Duration(config.RepliesPerWindow))

	return &ReplyDeliverer{
		store:   store,
		client:  client,
		logger:  logger,
		limiter: rate.NewLimiter(r, 1), // burst of 1 keeps delivery conservative
		config:  config,
	}
}

// DeliverPendingReplies posts one batch of pending replies, oldest
// first. Replies that keep failing after retries are marked failed so
// the batch never wedges on one bad row.
func (d *ReplyDeliverer) DeliverPendingReplies(ctx context.Context) error {
	log := d.logger.WithField("method", "DeliverPendingReplies")

	pending, err := d.store.RecallPendingReplies(ctx, d.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to recall pending replies: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	log.WithField("pending_count", len(pending)).Info("Delivering pending replies")

	for _, reply := range pending {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}

		if err := d.deliverWithRetry(ctx, reply); err != nil {
			log.WithError(err).WithField("reply_id", reply.ReplyID).Error("Delivery failed, marking reply failed")

			if markErr := d.store.MarkReplyFailed(ctx, reply.ReplyID); markErr != nil {
				log.WithError(markErr).WithField("reply_id", reply.ReplyID).Error("Failed to mark reply as failed")
			}

			if isRateLimitError(err) {
				log.WithField("cooldown", d.config.RateLimitCooldown).Info("Rate limit reached, pausing delivery")
				time.Sleep(d.config.RateLimitCooldown)
			}
		}
	}

	return nil
}

func (d *ReplyDeliverer) deliverWithRetry(ctx context.Context, reply memory.PendingReply) error {
	var lastErr error

	for attempt := 0; attempt < d.config.MaxRetries; attempt++ {
		if err := d.deliverSingle(ctx, reply); err != nil {
			lastErr = err
			time.Sleep(d.config.RetryDelay)
			continue
		}
		return nil
	}

	return fmt.Errorf("failed after %d retries: %w", d.config.MaxRetries, lastErr)
}

func (d *ReplyDeliverer) deliverSingle(ctx context.Context, reply memory.PendingReply) error {
	log := d.logger.WithFields(logrus.Fields{
		"reply_id":   reply.ReplyID,
		"comment_id": reply.CommentID,
		"platform":   reply.Platform,
	})

	// Deliver the recorded like intent first; a failed like never
	// blocks the reply itself.
	if reply.IsLiked {
		if err := d.client.LikeComment(ctx, reply.CommentID, reply.Platform); err != nil {
			log.WithError(err).Warn("Failed to deliver like, continuing with reply")
		}
	}

	posted, err := d.client.PostReply(ctx, platform.PostReplyParams{
		CommentID: reply.CommentID,
		Platform:  reply.Platform,
		Text:      reply.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to post reply: %w", err)
	}

	if err := d.store.MarkReplySent(ctx, reply.ReplyID); err != nil {
		return fmt.Errorf("reply posted but could not be marked sent: %w", err)
	}

	log.WithField("platform_reply_id", posted.ID).Info("Reply delivered")
	return nil
}

// Run drives delivery on a fixed interval until the context is
// canceled
func (d *ReplyDeliverer) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.WithField("interval", interval).Info("Starting reply delivery loop")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Reply delivery loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := d.DeliverPendingReplies(ctx); err != nil && err != context.Canceled {
				d.logger.WithError(err).Error("Delivery pass failed")
			}
		}
	}
}

// isRateLimitError checks if the error is related to rate limiting
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, keyword := range []string{
		"rate limit exceeded",
		"too many requests",
		"429",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}
