package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

type claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access/refresh token pairs.
// Access and refresh tokens are signed with separately configurable secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL reports the configured refresh-token lifetime.
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssuePair mints an access token and a refresh token for userID.
// The refresh token carries a JTI so it can be revoked on logout.
func (m *TokenManager) IssuePair(userID string) (models.Tokens, string, error) {
	access, err := m.sign(userID, typeAccess, "", m.accessTTL, m.accessSecret)
	if err != nil {
		return models.Tokens{}, "", err
	}
	jti := uuid.New().String()
	refresh, err := m.sign(userID, typeRefresh, jti, m.refreshTTL, m.refreshSecret)
	if err != nil {
		return models.Tokens{}, "", err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, jti, nil
}

// IssueAccess mints a new access token only; used by the refresh flow.
func (m *TokenManager) IssueAccess(userID string) (string, error) {
	return m.sign(userID, typeAccess, "", m.accessTTL, m.accessSecret)
}

func (m *TokenManager) sign(userID, typ, jti string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	c := claims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// VerifyAccess validates an access token and returns its subject.
// Missing, expired, malformed and badly signed tokens all map to the
// same unauthorized error.
func (m *TokenManager) VerifyAccess(token string) (string, error) {
	c, err := m.verify(token, typeAccess, m.accessSecret)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}

// VerifyRefresh validates a refresh token and returns its subject and JTI.
func (m *TokenManager) VerifyRefresh(token string) (userID, jti string, err error) {
	c, err := m.verify(token, typeRefresh, m.refreshSecret)
	if err != nil {
		return "", "", err
	}
	return c.Subject, c.ID, nil
}

func (m *TokenManager) verify(token, wantType string, secret []byte) (*claims, error) {
	if token == "" {
		return nil, errs.ErrUnauthorized
	}
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid || c.TokenType != wantType {
		return nil, errs.ErrUnauthorized
	}
	return &c, nil
}
