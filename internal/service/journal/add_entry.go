package journal

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

// AddEntry creates a new journal entry for the authenticated user.
func (s *Service) AddEntry(ctx context.Context, input AddEntryInput) (*domain.LogEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	entry := &domain.LogEntry{
		ID:         uuid.New(),
		OwnerID:    userID,
		Title:      strings.TrimSpace(input.Title),
		Body:       strings.TrimSpace(input.Body),
		Link:       trimOrNil(input.Link),
		LinkTitle:  trimOrNil(input.LinkTitle),
		OccurredAt: occurredAt,
		CreatedAt:  now,
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("journal.AddEntry: %w", err)
	}

	s.log.InfoContext(ctx, "journal entry added",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", entry.ID.String()),
	)

	return entry, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
