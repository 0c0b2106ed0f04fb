package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/pkg/ctxutil"
)

// DeleteEntry removes one of the authenticated user's journal entries.
// Returns ErrNotFound if the entry does not exist or belongs to someone else.
func (s *Service) DeleteEntry(ctx context.Context, input DeleteEntryInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.entries.Delete(ctx, userID, input.ID); err != nil {
		return fmt.Errorf("journal.DeleteEntry: %w", err)
	}

	s.log.InfoContext(ctx, "journal entry deleted",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", input.ID.String()),
	)

	return nil
}
