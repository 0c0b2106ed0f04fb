package journal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// logRepo defines the log entry repository interface needed by journal service.
type logRepo interface {
	Create(ctx context.Context, e *domain.LogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LogEntry, error)
	List(ctx context.Context, opts domain.LogFilter) ([]*domain.LogEntry, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// userRepo defines the user repository interface needed by journal service.
type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Service provides learning-log journal operations. Listing supports three
// visibility scopes: the caller's own entries, one named user's entries, or
// everyone's.
type Service struct {
	log     *slog.Logger
	entries logRepo
	users   userRepo
}

// NewService creates a new journal service instance.
func NewService(logger *slog.Logger, entries logRepo, users userRepo) *Service {
	return &Service{
		log:     logger.With("service", "journal"),
		entries: entries,
		users:   users,
	}
}
