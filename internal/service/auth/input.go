package auth

import (
	"errors"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Username        string
	Password        string
	PasswordConfirm string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if verr := domain.ValidateUsername(i.Username); verr != nil {
		errs = append(errs, collectFieldErrors(verr)...)
	}

	if verr := domain.ValidatePassword(i.Password); verr != nil {
		errs = append(errs, collectFieldErrors(verr)...)
	}

	if i.PasswordConfirm != i.Password {
		errs = append(errs, domain.FieldError{Field: "password_confirm", Message: "passwords do not match"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the password login operation.
type LoginInput struct {
	Username string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for the session refresh operation.
type RefreshInput struct {
	SessionToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionToken == "" {
		errs = append(errs, domain.FieldError{Field: "session_token", Message: "required"})
	} else if len(i.SessionToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "session_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangePasswordInput holds parameters for the change password operation.
type ChangePasswordInput struct {
	CurrentPassword    string
	NewPassword        string
	NewPasswordConfirm string
}

// Validate validates the change password input.
func (i ChangePasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.CurrentPassword == "" {
		errs = append(errs, domain.FieldError{Field: "current_password", Message: "required"})
	}

	if verr := domain.ValidatePassword(i.NewPassword); verr != nil {
		for _, fe := range collectFieldErrors(verr) {
			fe.Field = "new_password"
			errs = append(errs, fe)
		}
	}

	if i.NewPasswordConfirm != i.NewPassword {
		errs = append(errs, domain.FieldError{Field: "new_password_confirm", Message: "passwords do not match"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// collectFieldErrors unpacks a validation error into its field errors.
func collectFieldErrors(err error) []domain.FieldError {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Errors
	}
	return []domain.FieldError{{Field: "input", Message: err.Error()}}
}
