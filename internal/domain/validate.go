package domain

import (
	"regexp"
	"unicode"
)

// usernameRe allows latin letters, digits and hyphens, 3 to 32 characters.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9-]{3,32}$`)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

// ValidateUsername checks the username against the account naming policy.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return NewValidationError("username",
			"must be 3-32 characters of latin letters, digits or hyphens")
	}
	return nil
}

// ValidatePassword checks the password against the strength policy:
// no whitespace, minimum length, and at least one lowercase letter,
// one uppercase letter, one digit and one special character.
func ValidatePassword(password string) error {
	var errs []FieldError

	add := func(msg string) {
		errs = append(errs, FieldError{Field: "password", Message: msg})
	}

	if len(password) < MinPasswordLength {
		add("must be at least 8 characters long")
	}
	if len(password) > MaxPasswordLength {
		add("must be at most 72 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			add("must not contain whitespace")
			return NewValidationErrors(errs)
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasLower {
		add("must contain a lowercase letter")
	}
	if !hasUpper {
		add("must contain an uppercase letter")
	}
	if !hasDigit {
		add("must contain a digit")
	}
	if !hasSpecial {
		add("must contain a special character")
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
