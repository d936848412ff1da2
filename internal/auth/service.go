package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id, hashed string) error
}

// Service orchestrates registration, authentication and profile access.
type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Register checks uniqueness, hashes the password and persists a new user.
// The pre-checks give the friendlier error; the database unique constraints
// remain authoritative and map to the same conflict errors on insert.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, errs.ErrEmailExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, errs.ErrUsernameTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return s.users.CreateUser(ctx, &models.User{
		Email:     email,
		Username:  req.Username,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

// Authenticate looks up the user by email or username and verifies the
// password. An unknown identifier and a wrong password are indistinguishable
// to the caller; infrastructure failures are not masked as bad credentials.
func (s *Service) Authenticate(ctx context.Context, emailOrUsername, password string) (*models.User, error) {
	user, err := s.lookup(ctx, emailOrUsername)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) lookup(ctx context.Context, identifier string) (*models.User, error) {
	byEmail := func() (*models.User, error) {
		return s.users.GetUserByEmail(ctx, strings.ToLower(identifier))
	}
	byUsername := func() (*models.User, error) {
		return s.users.GetUserByUsername(ctx, identifier)
	}

	first, second := byUsername, byEmail
	if strings.Contains(identifier, "@") {
		first, second = byEmail, byUsername
	}

	user, err := first()
	if errors.Is(err, errs.ErrNotFound) {
		user, err = second()
	}
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail returns the user registered under email, if any.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// SetPassword hashes and stores a new password for the user.
func (s *Service) SetPassword(ctx context.Context, id, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, string(hashed))
}

// ChangePassword verifies the current password before storing the new one.
func (s *Service) ChangePassword(ctx context.Context, id, current, password string) error {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return errs.ErrInvalidCredentials
	}
	return s.SetPassword(ctx, id, password)
}

// GetProfile returns the user for id.
func (s *Service) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// UpdateProfile applies a whitelisted patch to the user's profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		name := strings.TrimSpace(*patch.FirstName)
		if name == "" || len(name) > 255 {
			return nil, errs.Validation("firstName must be between 1 and 255 characters")
		}
		user.FirstName = name
	}
	if patch.LastName != nil {
		name := strings.TrimSpace(*patch.LastName)
		if name == "" || len(name) > 255 {
			return nil, errs.Validation("lastName must be between 1 and 255 characters")
		}
		user.LastName = name
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !ValidEmail(email) {
			return nil, errs.Validation("email must be a valid email address")
		}
		user.Email = email
	}

	return s.users.UpdateUser(ctx, user)
}
