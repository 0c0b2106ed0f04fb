package journal

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const (
	maxTitleLen = 200
	maxBodyLen  = 10000
)

// AddEntryInput holds the parameters for adding a journal entry.
// Link and LinkTitle must be set together or not at all.
type AddEntryInput struct {
	Title      string
	Body       string
	Link       *string
	LinkTitle  *string
	OccurredAt time.Time // zero value means now
}

// Validate checks all fields and collects all errors.
func (i AddEntryInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	body := strings.TrimSpace(i.Body)
	if body == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "required"})
	}
	if len(body) > maxBodyLen {
		errs = append(errs, domain.FieldError{Field: "body", Message: "max 10000 characters"})
	}

	// A link without a title (or the reverse) renders as a broken reference.
	if (i.Link == nil) != (i.LinkTitle == nil) {
		errs = append(errs, domain.FieldError{Field: "link", Message: "link and link_title must be set together"})
	}
	if i.Link != nil && strings.TrimSpace(*i.Link) == "" {
		errs = append(errs, domain.FieldError{Field: "link", Message: "required when set"})
	}
	if i.LinkTitle != nil && strings.TrimSpace(*i.LinkTitle) == "" {
		errs = append(errs, domain.FieldError{Field: "link_title", Message: "required when set"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteEntryInput holds the parameters for deleting a journal entry.
type DeleteEntryInput struct {
	ID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteEntryInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}

// ListInput holds the parameters for listing journal entries.
// Username is consulted only for ScopeUser. From and To bound OccurredAt
// inclusively; a date-only To (midnight clock) covers the whole day.
type ListInput struct {
	Scope    domain.LogScope
	Username string
	From     time.Time
	To       time.Time
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if !i.Scope.Valid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "must be mine, user or everyone"})
	}
	if i.Scope == domain.ScopeUser && strings.TrimSpace(i.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required for user scope"})
	}
	if !i.From.IsZero() && !i.To.IsZero() && i.To.Before(i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must not be before from"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
