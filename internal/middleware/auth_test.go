package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f *fakeVerifier) VerifyAccess(string) (string, error) { return f.userID, f.err }

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserID(r.Context()); ok {
			w.Write([]byte(id))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func get(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	ok := RequireAuth(&fakeVerifier{userID: "user-1"})(echoUser())
	bad := RequireAuth(&fakeVerifier{err: errors.New("expired")})(echoUser())

	w := get(ok, "Bearer token")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-1", w.Body.String())

	require.Equal(t, http.StatusUnauthorized, get(ok, "").Code)
	require.Equal(t, http.StatusUnauthorized, get(ok, "Basic abc").Code)
	require.Equal(t, http.StatusUnauthorized, get(bad, "Bearer token").Code)
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()
	ok := OptionalAuth(&fakeVerifier{userID: "user-1"})(echoUser())
	bad := OptionalAuth(&fakeVerifier{err: errors.New("expired")})(echoUser())

	w := get(ok, "Bearer token")
	require.Equal(t, "user-1", w.Body.String())

	// anonymous and invalid tokens both pass through without identity
	require.Equal(t, "anonymous", get(ok, "").Body.String())
	require.Equal(t, "anonymous", get(bad, "Bearer token").Body.String())
}
