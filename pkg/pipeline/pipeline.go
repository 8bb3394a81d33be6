package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/classify"
	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/leads"
	"github.com/replyloop/engine-go/pkg/replies"
)

const (
	reasonSpam = "Spam detected"
	reasonHate = "Hate comment - escalated to user"
)

// Pipeline runs the per-comment decision pass: classify, apply policy
// gates, record auto-like intent, generate and persist a reply, and
// detect sales leads. Each invocation is an independent unit of work;
// nothing is shared across invocations beyond the ledger.
type Pipeline struct {
	settings   SettingsSource
	comments   CommentLedger
	replies    ReplyLedger
	classifier classify.Classifier
	detector   leads.Detector
	generator  replies.Generator
	logger     *logrus.Logger
}

// Config holds the pipeline's injected dependencies
type Config struct {
	Settings   SettingsSource
	Comments   CommentLedger
	Replies    ReplyLedger
	Classifier classify.Classifier
	Detector   leads.Detector
	Generator  replies.Generator
	Logger     *logrus.Logger
}

func New(config Config) (*Pipeline, error) {
	if config.Settings == nil {
		return nil, fmt.Errorf("settings source is required")
	}
	if config.Comments == nil {
		return nil, fmt.Errorf("comment ledger is required")
	}
	if config.Replies == nil {
		return nil, fmt.Errorf("reply ledger is required")
	}
	if config.Classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if config.Detector == nil {
		return nil, fmt.Errorf("lead detector is required")
	}
	if config.Generator == nil {
		return nil, fmt.Errorf("reply generator is required")
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	return &Pipeline{
		settings:   config.Settings,
		comments:   config.Comments,
		replies:    config.Replies,
		classifier: config.Classifier,
		detector:   config.Detector,
		generator:  config.Generator,
		logger:     config.Logger,
	}, nil
}

// Process runs one decision pass over a single comment. The comment
// always ends in a terminal state (ignored, escalated, replied) unless
// a hard failure aborts the invocation: a missing settings record, a
// failed comment persist in the classify/gate steps, or a failed
// reply insert. Leaf-service failures never abort; they degrade to
// defaults at the adapter boundary.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Decision, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	log := p.logger.WithFields(logrus.Fields{
		"comment_id": req.CommentID,
		"user_id":    req.UserID,
		"platform":   req.Platform,
	})

	// Step 1: load settings. The only stage with no fallback; without
	// settings there is no policy to apply.
	settings, err := p.settings.GetSettings(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for user %s: %w", req.UserID, err)
	}

	// Step 2: classify and persist unconditionally, so even suppressed
	// comments carry classification metadata.
	classification := p.classifier.Classify(ctx, req.Text)
	sentiment := classification.Category

	log = log.WithFields(logrus.Fields{
		"sentiment": sentiment,
		"score":     classification.Score,
	})

	if err := p.comments.UpdateComment(ctx, req.CommentID, map[string]interface{}{
		"sentiment":       string(sentiment),
		"sentiment_score": classification.Score,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist classification: %w", err)
	}

	// Step 3: spam gate
	if sentiment == models.SentimentSpam && settings.IgnoreSpam {
		if err := p.comments.UpdateComment(ctx, req.CommentID, map[string]interface{}{
			"status": models.CommentStatusIgnored,
		}); err != nil {
			return nil, fmt.Errorf("failed to persist ignored status: %w", err)
		}

		log.WithField("action", ActionIgnored).Info("Comment suppressed by spam gate")
		return &Decision{Action: ActionIgnored, Reason: reasonSpam}, nil
	}

	// Step 4: hate gate. Mutually exclusive with the spam gate since a
	// comment carries a single sentiment value.
	if sentiment == models.SentimentHate && settings.IgnoreHateComments {
		if err := p.comments.UpdateComment(ctx, req.CommentID, map[string]interface{}{
			"status": models.CommentStatusEscalated,
		}); err != nil {
			return nil, fmt.Errorf("failed to persist escalated status: %w", err)
		}

		log.WithField("action", ActionEscalated).Info("Hate comment escalated")
		return &Decision{Action: ActionEscalated, Reason: reasonHate}, nil
	}

	// Step 5: auto-like. Recorded intent only; delivery is async. A
	// failed write here never blocks the reply.
	if sentiment == models.SentimentPositive && settings.AutoLikePositive && req.Platform == models.PlatformInstagram {
		if err := p.comments.UpdateComment(ctx, req.CommentID, map[string]interface{}{
			"is_liked": true,
		}); err != nil {
			log.WithError(err).Warn("Failed to record auto-like intent, continuing")
		} else {
			log.Debug("Auto-like intent recorded")
		}
	}

	// Step 6: generate the reply. Always yields non-empty text.
	replyText := p.generator.Generate(ctx, replies.Request{
		Text:      req.Text,
		UserID:    req.UserID,
		Tone:      settings.DefaultTone,
		Language:  settings.DefaultLanguage,
		Sentiment: sentiment,
	})

	// Step 7: persist the reply. A reply we cannot persist must not be
	// reported as success.
	reply := &models.AutoReply{
		ID:        uuid.New().String(),
		CommentID: req.CommentID,
		Text:      replyText,
		Tone:      settings.DefaultTone,
		Language:  settings.DefaultLanguage,
		Status:    models.ReplyStatusPending,
		CreatedBy: models.ReplyOriginAI,
	}
	if err := p.replies.InsertAutoReply(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to persist auto reply: %w", err)
	}

	// Step 8: lead detection. A lead rewrites the persisted sentiment
	// to a composite tag preserving the original classification.
	signal := p.detector.DetectLead(ctx, req.Text)

	persistedSentiment := string(sentiment)
	statusFields := map[string]interface{}{
		"status": models.CommentStatusReplied,
	}
	if signal.IsLead {
		persistedSentiment = fmt.Sprintf("%s_lead_%s", sentiment, signal.Temperature)
		statusFields["sentiment"] = persistedSentiment
	}

	// The reply row already exists, so a failed status flip is logged
	// and absorbed rather than reported as a failed invocation.
	if err := p.comments.UpdateComment(ctx, req.CommentID, statusFields); err != nil {
		log.WithError(err).Error("Failed to persist replied status")
	}

	log.WithFields(logrus.Fields{
		"action":  ActionReplied,
		"is_lead": signal.IsLead,
	}).Info("Reply generated and persisted")

	// Step 9: return the structured decision
	return &Decision{
		Action: ActionReplied,
		Reply: &ReplyResult{
			ID:              reply.ID,
			Text:            reply.Text,
			Tone:            reply.Tone,
			Language:        reply.Language,
			Sentiment:       persistedSentiment,
			IsSalesLead:     signal.IsLead,
			LeadTemperature: signal.Temperature,
		},
	}, nil
}
