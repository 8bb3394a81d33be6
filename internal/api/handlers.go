package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/memory"
	"github.com/replyloop/engine-go/pkg/pipeline"
)

// DecisionPipeline is the slice of the pipeline the HTTP surface
// invokes
type DecisionPipeline interface {
	Process(ctx context.Context, req pipeline.Request) (*pipeline.Decision, error)
}

// ProfileStore is the slice of the settings store the mutating
// endpoints use
type ProfileStore interface {
	UpsertSettings(ctx context.Context, settings *models.AutoReplySettings) error
	UpsertBrandVoice(ctx context.Context, voice *models.BrandVoice) error
}

// Handlers provides the HTTP handlers for the decision engine
type Handlers struct {
	pipeline DecisionPipeline
	profiles ProfileStore
	logger   *logrus.Logger
}

// NewHandlers creates a new Handlers instance with the provided
// dependencies
func NewHandlers(p DecisionPipeline, profiles ProfileStore, logger *logrus.Logger) *Handlers {
	return &Handlers{
		pipeline: p,
		profiles: profiles,
		logger:   logger,
	}
}

type processResponse struct {
	Success bool                  `json:"success"`
	Action  pipeline.Action       `json:"action"`
	Reason  string                `json:"reason,omitempty"`
	Reply   *pipeline.ReplyResult `json:"reply,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ProcessCommentHandler handles POST /api/comments/process, the
// pipeline's invocation boundary.
func (h *Handlers) ProcessCommentHandler(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	decision, err := h.pipeline.Process(r.Context(), req)
	if err != nil {
		log := h.logger.WithError(err).WithFields(logrus.Fields{
			"comment_id": req.CommentID,
			"user_id":    req.UserID,
		})

		if errors.Is(err, memory.ErrSettingsNotFound) {
			log.Warn("Pipeline invoked for user without settings")
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "auto-reply settings not found"})
			return
		}

		// Hard failures surface as a generic message; internal detail
		// stays in the logs.
		log.Error("Pipeline invocation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate reply"})
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Success: true,
		Action:  decision.Action,
		Reason:  decision.Reason,
		Reply:   decision.Reply,
	})
}

// UpdateSettingsHandler handles PUT /api/settings/{userID}
func (h *Handlers) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "userID is required"})
		return
	}

	var settings models.AutoReplySettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	settings.ID = 0
	settings.UserID = userID

	if err := h.profiles.UpsertSettings(r.Context(), &settings); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to update settings")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to update settings"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateBrandVoiceHandler handles PUT /api/brand-voice/{userID}
func (h *Handlers) UpdateBrandVoiceHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "userID is required"})
		return
	}

	var voice models.BrandVoice
	if err := json.NewDecoder(r.Body).Decode(&voice); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	voice.ID = 0
	voice.UserID = userID

	if voice.BrandName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "brand_name is required"})
		return
	}

	if err := h.profiles.UpsertBrandVoice(r.Context(), &voice); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to update brand voice")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to update brand voice"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
