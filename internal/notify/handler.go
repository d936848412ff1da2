package notify

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/focusflow/backend/internal/middleware"
	"github.com/focusflow/backend/internal/models"
	"github.com/focusflow/backend/internal/web"
)

var validTypes = map[string]bool{
	"success": true,
	"error":   true,
	"warning": true,
	"info":    true,
	"focus":   true,
}

// Handler holds the notification HTTP handlers.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// SendCliq handles POST /notify/cliq. Authentication is optional; when a
// bearer token is present the user id is echoed into the card metadata.
func (h *Handler) SendCliq(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" && req.Message == "" {
		web.Fail(w, http.StatusBadRequest, "Either title or message is required")
		return
	}
	if req.WebhookURL == "" && !(req.AccessToken != "" && req.ChannelID != "") {
		web.Fail(w, http.StatusBadRequest, "Either webhookUrl, or (accessToken and channelId) is required")
		return
	}
	if req.Type == "" {
		req.Type = "info"
	}
	if !validTypes[req.Type] {
		web.Fail(w, http.StatusBadRequest, "type must be one of: success, error, warning, info, focus")
		return
	}
	if len(req.Title) > 200 {
		web.Fail(w, http.StatusBadRequest, "title must be at most 200 characters")
		return
	}
	if len(req.Message) > 2000 {
		web.Fail(w, http.StatusBadRequest, "message must be at most 2000 characters")
		return
	}

	if userID, ok := middleware.UserID(r.Context()); ok {
		meta := make(map[string]any, len(req.Metadata)+1)
		for k, v := range req.Metadata {
			meta[k] = v
		}
		meta["userId"] = userID
		req.Metadata = meta
	}

	result, err := h.svc.Send(r.Context(), req)
	if err != nil {
		h.log.Warn("notification dispatch failed", zap.Error(err))
		web.Error(w, err)
		return
	}

	h.log.Info("notification sent",
		zap.String("method", result.Method),
		zap.String("type", req.Type),
	)
	web.OKMessage(w, http.StatusOK, "Notification sent successfully", result)
}
