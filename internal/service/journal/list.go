package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/internal/query"
	"github.com/heartmarshall/studylog-backend/pkg/ctxutil"
)

// List returns journal entries for the requested scope, newest first,
// optionally bounded to an inclusive date range.
//
// ScopeMine returns only the caller's entries. ScopeUser returns the named
// user's entries; when no such user exists the listing falls back to
// everyone's entries rather than failing. ScopeEveryone returns all entries.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.LogEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var ownerID *uuid.UUID
	switch input.Scope {
	case domain.ScopeMine:
		ownerID = &userID
	case domain.ScopeUser:
		user, err := s.users.GetByUsername(ctx, strings.TrimSpace(input.Username))
		switch {
		case err == nil:
			ownerID = &user.ID
		case errors.Is(err, domain.ErrNotFound):
			// Unknown username widens the search instead of failing.
		default:
			return nil, fmt.Errorf("journal.List get user: %w", err)
		}
	case domain.ScopeEveryone:
	}

	// A date-only upper bound (midnight clock) covers the whole day.
	to := input.To
	if h, m, sec := to.Clock(); !to.IsZero() && h == 0 && m == 0 && sec == 0 && to.Nanosecond() == 0 {
		to = query.EndOfDay(to)
	}

	entries, err := s.entries.List(ctx, domain.LogFilter{
		OwnerID: ownerID,
		From:    input.From,
		To:      to,
	})
	if err != nil {
		return nil, fmt.Errorf("journal.List: %w", err)
	}

	return entries, nil
}
