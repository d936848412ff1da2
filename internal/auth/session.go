package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks live refresh-token JTIs so logout can revoke them
// before they expire. Backed by Redis so revocation holds across instances.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Put records a refresh JTI -> userID mapping with the token's TTL.
func (s *SessionStore) Put(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, "refresh:"+jti, userID, ttl).Err()
}

// Live reports whether the refresh JTI is still valid (not revoked, not expired).
func (s *SessionStore) Live(ctx context.Context, jti string) (bool, error) {
	_, err := s.rdb.Get(ctx, "refresh:"+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke removes a refresh JTI, ending the session.
func (s *SessionStore) Revoke(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, "refresh:"+jti).Err()
}

// PutReset records a password-reset token -> userID mapping.
func (s *SessionStore) PutReset(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, "pwreset:"+token, userID, ttl).Err()
}

// TakeReset consumes a password-reset token, returning the userID it was
// issued for. Each token redeems at most once; unknown tokens return "".
func (s *SessionStore) TakeReset(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, "pwreset:"+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
