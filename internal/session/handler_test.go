package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/middleware"
	"github.com/focusflow/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	byID   map[string]*models.FocusSession
	nextID int
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{byID: map[string]*models.FocusSession{}}
}

func (f *fakeStore) Insert(_ context.Context, sess *models.FocusSession) (string, error) {
	f.nextID++
	id := "sess-" + strconv.Itoa(f.nextID)
	sess.ID = primitive.NewObjectID()
	sess.StartedAt = time.Now()
	cpy := *sess
	f.byID[id] = &cpy
	return id, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]models.FocusSession, error) {
	var out []models.FocusSession
	for _, s := range f.byID {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*models.FocusSession, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *s
	return &cpy, nil
}

func (f *fakeStore) Complete(_ context.Context, id string, actualMinutes int, interrupted bool) (*models.FocusSession, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	now := time.Now()
	s.ActualMinutes = actualMinutes
	s.Completed = !interrupted
	s.Interrupted = interrupted
	s.EndedAt = &now
	cpy := *s
	return &cpy, nil
}

func newRouter(store Store) *chi.Mux {
	h := NewHandler(store)
	r := chi.NewRouter()
	r.Post("/sessions", h.Start)
	r.Get("/sessions", h.List)
	r.Put("/sessions/{id}/complete", h.Complete)
	r.Get("/analytics/summary", h.Summary)
	return r
}

func do(t *testing.T, r http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStart_Validation(t *testing.T) {
	t.Parallel()
	r := newRouter(newFakeStore())

	w := do(t, r, http.MethodPost, "/sessions", "user-1", map[string]any{"plannedMinutes": 25})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/sessions", "user-1", map[string]any{"mode": "focus", "plannedMinutes": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartCompleteList(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/sessions", "user-1", map[string]any{
		"mode":           "deep-focus",
		"plannedMinutes": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// fake assigns sequential ids
	w = do(t, r, http.MethodPut, "/sessions/sess-1/complete", "user-1", map[string]any{
		"actualMinutes": 48,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.FocusSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Data.Completed)
	require.False(t, resp.Data.Interrupted)
	require.Equal(t, 48, resp.Data.ActualMinutes)

	w = do(t, r, http.MethodGet, "/sessions", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestComplete_OtherUsersSessionHidden(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	r := newRouter(store)

	do(t, r, http.MethodPost, "/sessions", "user-1", map[string]any{
		"mode":           "focus",
		"plannedMinutes": 25,
	})

	w := do(t, r, http.MethodPut, "/sessions/sess-1/complete", "user-2", map[string]any{
		"actualMinutes": 10,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummary(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	r := newRouter(store)

	do(t, r, http.MethodPost, "/sessions", "user-1", map[string]any{"mode": "focus", "plannedMinutes": 50})
	do(t, r, http.MethodPut, "/sessions/sess-1/complete", "user-1", map[string]any{"actualMinutes": 50})

	w := do(t, r, http.MethodGet, "/analytics/summary", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Stats             models.SessionStats `json:"stats"`
			ProductivityScore int                 `json:"productivityScore"`
			FocusScore        int                 `json:"focusScore"`
			EfficiencyScore   int                 `json:"efficiencyScore"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Stats.TotalSessions)
	require.Greater(t, resp.Data.FocusScore, 0)
}
