package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/middleware"
	"github.com/focusflow/backend/internal/models"
	"github.com/focusflow/backend/internal/web"
)

// Store defines the interface for focus-session persistence.
type Store interface {
	Insert(ctx context.Context, sess *models.FocusSession) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.FocusSession, error)
	GetByID(ctx context.Context, id string) (*models.FocusSession, error)
	Complete(ctx context.Context, id string, actualMinutes int, interrupted bool) (*models.FocusSession, error)
}

// Handler holds focus-session HTTP handlers.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Start opens a new focus session for the authenticated user.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode == "" {
		web.Fail(w, http.StatusBadRequest, "mode is required")
		return
	}
	if req.PlannedMinutes < 1 || req.PlannedMinutes > 480 {
		web.Fail(w, http.StatusBadRequest, "plannedMinutes must be between 1 and 480")
		return
	}

	sess := &models.FocusSession{
		UserID:         userID,
		Mode:           req.Mode,
		PlannedMinutes: req.PlannedMinutes,
	}
	id, err := h.store.Insert(r.Context(), sess)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	saved, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	web.OK(w, http.StatusCreated, saved)
}

// Complete closes a focus session, recording the outcome.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	var req models.CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ActualMinutes < 0 {
		web.Fail(w, http.StatusBadRequest, "actualMinutes must not be negative")
		return
	}

	sess, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		web.Error(w, err)
		return
	}
	// Do not reveal other users' session ids.
	if sess.UserID != userID {
		web.Error(w, errs.ErrNotFound)
		return
	}

	updated, err := h.store.Complete(r.Context(), id, req.ActualMinutes, req.Interrupted)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.OK(w, http.StatusOK, updated)
}

// List returns the user's sessions, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	sessions, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "database error")
		return
	}
	if sessions == nil {
		sessions = []models.FocusSession{}
	}
	web.OK(w, http.StatusOK, sessions)
}

// Summary aggregates the user's history into analytics scores.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	sessions, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "database error")
		return
	}

	stats := aggregate(sessions)
	web.OK(w, http.StatusOK, map[string]any{
		"stats":             stats,
		"productivityScore": ProductivityScore(stats),
		"focusScore":        FocusScore(stats),
		"efficiencyScore":   EfficiencyScore(stats),
	})
}
