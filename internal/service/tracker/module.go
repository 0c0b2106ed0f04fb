package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/pkg/ctxutil"
)

// AddModule creates a new module for the authenticated user.
// Returns ErrAlreadyExists if the user already tracks a module with this name.
func (s *Service) AddModule(ctx context.Context, input AddModuleInput) (*domain.Module, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	module := &domain.Module{
		ID:        uuid.New(),
		OwnerID:   userID,
		Name:      strings.TrimSpace(input.Name),
		Year:      input.Year,
		Completed: input.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.modules.Create(ctx, module); err != nil {
		return nil, fmt.Errorf("tracker.AddModule: %w", err)
	}

	s.log.InfoContext(ctx, "module added",
		slog.String("user_id", userID.String()),
		slog.String("name", module.Name),
	)

	return module, nil
}

// UpdateModule patches the module matched by name. Unset fields are left
// unchanged; the rename is applied after all other fields.
// Returns ErrNotFound if no module matches, ErrAlreadyExists if the rename
// collides with another module.
func (s *Service) UpdateModule(ctx context.Context, input UpdateModuleInput) (*domain.Module, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Module
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		module, err := s.modules.GetByName(txCtx, userID, strings.TrimSpace(input.Name))
		if err != nil {
			return fmt.Errorf("get module: %w", err)
		}

		if input.Year != nil {
			module.Year = *input.Year
		}
		applyBool(&module.Completed, input.Completed)
		applyString(&module.Name, input.NewName)
		module.UpdatedAt = time.Now()

		if err := s.modules.Update(txCtx, module); err != nil {
			return fmt.Errorf("update module: %w", err)
		}

		updated = module
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tracker.UpdateModule: %w", err)
	}

	s.log.InfoContext(ctx, "module updated",
		slog.String("user_id", userID.String()),
		slog.String("name", updated.Name),
	)

	return updated, nil
}

// DeleteModule removes the module matched by name.
// Returns ErrNotFound if no module matches.
func (s *Service) DeleteModule(ctx context.Context, input DeleteInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.modules.Delete(ctx, userID, strings.TrimSpace(input.Name)); err != nil {
		return fmt.Errorf("tracker.DeleteModule: %w", err)
	}

	s.log.InfoContext(ctx, "module deleted",
		slog.String("user_id", userID.String()),
		slog.String("name", input.Name),
	)

	return nil
}

// ListModules returns the authenticated user's modules ordered by name,
// filtered per input.
func (s *Service) ListModules(ctx context.Context, input ListModulesInput) ([]*domain.Module, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	modules, err := s.modules.List(ctx, userID, domain.ModuleFilter{
		Year:          input.Year,
		CompletedOnly: input.CompletedOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("tracker.ListModules: %w", err)
	}

	return modules, nil
}
