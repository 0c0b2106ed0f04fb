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

// AddCourse creates a new course for the authenticated user.
// Returns ErrAlreadyExists if the user already tracks a course with this name.
func (s *Service) AddCourse(ctx context.Context, input AddCourseInput) (*domain.Course, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	course := &domain.Course{
		ID:        uuid.New(),
		OwnerID:   userID,
		Name:      strings.TrimSpace(input.Name),
		Provider:  strings.TrimSpace(input.Provider),
		Topic:     strings.TrimSpace(input.Topic),
		Completed: input.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("tracker.AddCourse: %w", err)
	}

	s.log.InfoContext(ctx, "course added",
		slog.String("user_id", userID.String()),
		slog.String("name", course.Name),
	)

	return course, nil
}

// UpdateCourse patches the course matched by name. Unset fields are left
// unchanged; the rename is applied after all other fields.
// Returns ErrNotFound if no course matches, ErrAlreadyExists if the rename
// collides with another course.
func (s *Service) UpdateCourse(ctx context.Context, input UpdateCourseInput) (*domain.Course, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Course
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		course, err := s.courses.GetByName(txCtx, userID, strings.TrimSpace(input.Name))
		if err != nil {
			return fmt.Errorf("get course: %w", err)
		}

		applyString(&course.Provider, input.Provider)
		applyString(&course.Topic, input.Topic)
		applyBool(&course.Completed, input.Completed)
		applyString(&course.Name, input.NewName)
		course.UpdatedAt = time.Now()

		if err := s.courses.Update(txCtx, course); err != nil {
			return fmt.Errorf("update course: %w", err)
		}

		updated = course
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tracker.UpdateCourse: %w", err)
	}

	s.log.InfoContext(ctx, "course updated",
		slog.String("user_id", userID.String()),
		slog.String("name", updated.Name),
	)

	return updated, nil
}

// DeleteCourse removes the course matched by name.
// Returns ErrNotFound if no course matches.
func (s *Service) DeleteCourse(ctx context.Context, input DeleteInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, userID, strings.TrimSpace(input.Name)); err != nil {
		return fmt.Errorf("tracker.DeleteCourse: %w", err)
	}

	s.log.InfoContext(ctx, "course deleted",
		slog.String("user_id", userID.String()),
		slog.String("name", input.Name),
	)

	return nil
}

// ListCourses returns the authenticated user's courses, ordered or filtered
// per input. The default order is by name.
func (s *Service) ListCourses(ctx context.Context, input ListCoursesInput) ([]*domain.Course, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	courses, err := s.courses.List(ctx, userID, domain.CourseFilter{
		SortBy:        input.SortBy,
		CompletedOnly: input.CompletedOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("tracker.ListCourses: %w", err)
	}

	return courses, nil
}

// Skills aggregates the topics of the authenticated user's completed courses,
// ordered by course count descending, then topic name.
func (s *Service) Skills(ctx context.Context) ([]domain.Skill, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	skills, err := s.courses.Skills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("tracker.Skills: %w", err)
	}

	return skills, nil
}
