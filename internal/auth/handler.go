package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/middleware"
	"github.com/focusflow/backend/internal/models"
	"github.com/focusflow/backend/internal/web"
)

// resetTokenTTL bounds how long a password-reset token stays redeemable.
const resetTokenTTL = time.Hour

// Sessions tracks live refresh tokens for revocation on logout, and
// outstanding password-reset tokens.
type Sessions interface {
	Put(ctx context.Context, jti, userID string, ttl time.Duration) error
	Live(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
	PutReset(ctx context.Context, token, userID string, ttl time.Duration) error
	TakeReset(ctx context.Context, token string) (string, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc      *Service
	tokens   *TokenManager
	sessions Sessions
	log      *zap.Logger
}

func NewHandler(svc *Service, tokens *TokenManager, sessions Sessions, log *zap.Logger) *Handler {
	return &Handler{svc: svc, tokens: tokens, sessions: sessions, log: log}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRegister(req); err != nil {
		web.Error(w, err)
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}

	web.OKMessage(w, http.StatusCreated, "User registered successfully", map[string]string{
		"userId":   user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
}

// Login authenticates a user and issues a token pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmailOrUsername == "" || req.Password == "" {
		web.Fail(w, http.StatusBadRequest, "emailOrUsername and password are required")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		web.Error(w, err)
		return
	}

	tokens, jti, err := h.tokens.IssuePair(user.ID)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "token issuance failed")
		return
	}
	if err := h.sessions.Put(r.Context(), jti, user.ID, h.tokens.RefreshTTL()); err != nil {
		web.Fail(w, http.StatusInternalServerError, "session creation failed")
		return
	}

	web.OK(w, http.StatusOK, map[string]any{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh mints a new access token from a valid refresh token.
// The refresh token itself is not rotated.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		web.Fail(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	userID, jti, err := h.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		web.Fail(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}
	live, err := h.sessions.Live(r.Context(), jti)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "session lookup failed")
		return
	}
	if !live {
		web.Fail(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	access, err := h.tokens.IssueAccess(userID)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	web.OK(w, http.StatusOK, map[string]string{"accessToken": access})
}

// Profile returns the currently authenticated user.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.OK(w, http.StatusOK, user)
}

// UpdateProfile applies a whitelisted patch to the authenticated user.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.OK(w, http.StatusOK, user)
}

// Logout revokes the session's refresh token, if one is supplied.
// Access tokens keep self-expiring regardless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		web.Fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		if _, jti, err := h.tokens.VerifyRefresh(req.RefreshToken); err == nil {
			if err := h.sessions.Revoke(r.Context(), jti); err != nil {
				// The refresh token is still live; surface the failure
				// instead of reporting a logout that did not happen.
				h.log.Error("refresh token revocation failed", zap.Error(err))
				web.Fail(w, http.StatusInternalServerError, "logout failed")
				return
			}
		}
	}

	web.OKMessage(w, http.StatusOK, "Logged out successfully", nil)
}

// ForgotPassword issues a password-reset token for the account, if one
// exists. The response never reveals whether the email is registered;
// token delivery is left to the (not yet built) mailer.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !ValidEmail(req.Email) {
		web.Fail(w, http.StatusBadRequest, "email must be a valid email address")
		return
	}

	user, err := h.svc.FindByEmail(r.Context(), req.Email)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		// fall through to the generic response
	case err != nil:
		web.Error(w, err)
		return
	default:
		token := uuid.NewString()
		if err := h.sessions.PutReset(r.Context(), token, user.ID, resetTokenTTL); err != nil {
			web.Fail(w, http.StatusInternalServerError, "could not create reset token")
			return
		}
		h.log.Info("password reset requested", zap.String("user_id", user.ID))
	}

	web.OKMessage(w, http.StatusOK,
		"If the email is registered, a password reset link has been sent", nil)
}

// ResetPassword redeems a reset token and stores the new password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		web.Fail(w, http.StatusBadRequest, "token is required")
		return
	}
	if !validPassword(req.Password) {
		web.Fail(w, http.StatusBadRequest, "password must be at least 8 characters with upper, lower, and digit")
		return
	}

	userID, err := h.sessions.TakeReset(r.Context(), req.Token)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, "reset token lookup failed")
		return
	}
	if userID == "" {
		web.Fail(w, http.StatusBadRequest, "invalid or expired reset token")
		return
	}

	if err := h.svc.SetPassword(r.Context(), userID, req.Password); err != nil {
		web.Error(w, err)
		return
	}
	web.OKMessage(w, http.StatusOK, "Password has been reset successfully", nil)
}

// ChangePassword updates the authenticated user's password after
// verifying the current one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPassword == "" {
		web.Fail(w, http.StatusBadRequest, "currentPassword is required")
		return
	}
	if !validPassword(req.Password) {
		web.Fail(w, http.StatusBadRequest, "password must be at least 8 characters with upper, lower, and digit")
		return
	}

	if err := h.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.Password); err != nil {
		web.Error(w, err)
		return
	}
	web.OKMessage(w, http.StatusOK, "Password changed successfully", nil)
}
