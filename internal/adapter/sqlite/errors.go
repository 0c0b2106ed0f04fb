package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// MapError converts database/sql and SQLite driver errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass
// through. The modernc driver exposes no structured error codes, so
// constraint violations are detected from the error text.
func MapError(err error, entity string, key string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	case strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, key, err)
}
