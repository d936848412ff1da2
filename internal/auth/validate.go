package auth

import (
	"regexp"
	"unicode"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return len(s) <= 255 && emailRe.MatchString(s)
}

// validPassword enforces the documented minimum strength: at least 8
// characters with an upper-case letter, a lower-case letter and a digit.
func validPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// validateRegister checks the register body before it reaches the service.
func validateRegister(req models.RegisterRequest) error {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return errs.Validation("email, username, and password are required")
	}
	if !ValidEmail(req.Email) {
		return errs.Validation("email must be a valid email address")
	}
	if !validPassword(req.Password) {
		return errs.Validation("password must be at least 8 characters with upper, lower, and digit")
	}
	if len(req.Username) < 3 || len(req.Username) > 32 {
		return errs.Validation("username must be between 3 and 32 characters")
	}
	if len(req.FirstName) > 255 || len(req.LastName) > 255 {
		return errs.Validation("name fields must be at most 255 characters")
	}
	return nil
}
