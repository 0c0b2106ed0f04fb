package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/studylog-backend/internal/auth"
	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// Refresh performs session rotation and returns a new access token together
// with a new session token. The old session is revoked.
// If the session token is not found (revoked or reused), logs a warning and
// returns ErrUnauthorized. If the session is expired or the user is deleted,
// returns ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Hash the session token
	hash := auth.HashToken(input.SessionToken)

	// Step 3: Get session from storage
	session, err := s.sessions.GetByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Session not found (reuse detection)
			s.log.WarnContext(ctx, "session token reuse attempted")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get session: %w", err)
	}

	// Step 4: Check session state
	if session.IsRevoked() || session.IsExpired(time.Now()) {
		return nil, domain.ErrUnauthorized
	}

	// Step 5: Get user
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// User deleted
			s.log.WarnContext(ctx, "refresh for deleted user",
				slog.String("user_id", session.UserID.String()))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	// Step 6: Revoke old session
	if err := s.sessions.Revoke(ctx, session.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("auth.Refresh revoke session: %w", err)
	}

	// Step 7: Issue new session
	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh issue session: %w", err)
	}
	return result, nil
}
