package tracker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// courseRepo defines the course repository interface needed by tracker service.
type courseRepo interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Course, error)
	List(ctx context.Context, ownerID uuid.UUID, opts domain.CourseFilter) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
	Skills(ctx context.Context, ownerID uuid.UUID) ([]domain.Skill, error)
}

// moduleRepo defines the module repository interface needed by tracker service.
type moduleRepo interface {
	Create(ctx context.Context, m *domain.Module) error
	GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Module, error)
	List(ctx context.Context, ownerID uuid.UUID, opts domain.ModuleFilter) ([]*domain.Module, error)
	Update(ctx context.Context, m *domain.Module) error
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
}

// txManager defines the transaction manager interface needed by tracker service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides course and module progress tracking operations.
// All operations are scoped to the authenticated user; records are matched
// by name within the owner's collection.
type Service struct {
	log     *slog.Logger
	courses courseRepo
	modules moduleRepo
	tx      txManager
}

// NewService creates a new tracker service instance.
func NewService(
	logger *slog.Logger,
	courses courseRepo,
	modules moduleRepo,
	tx txManager,
) *Service {
	return &Service{
		log:     logger.With("service", "tracker"),
		courses: courses,
		modules: modules,
		tx:      tx,
	}
}

// applyString overwrites dst with the trimmed patch value when set.
func applyString(dst *string, patch *string) {
	if patch != nil {
		*dst = strings.TrimSpace(*patch)
	}
}

// applyBool overwrites dst with the patch value when set.
func applyBool(dst *bool, patch *bool) {
	if patch != nil {
		*dst = *patch
	}
}
