package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/pkg/ctxutil"
)

// ChangePassword replaces the authenticated user's password and revokes all
// existing sessions, forcing every device to log in again.
// Returns ErrUnauthorized if the current password is wrong.
func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return err
	}

	// Step 2: Get user
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("auth.ChangePassword get user: %w", err)
	}

	// Step 3: Verify current password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}

	// Step 4: Hash new password
	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword hash password: %w", err)
	}

	// Step 5: Update hash and revoke sessions atomically
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user.PasswordHash = string(hash)
		user.UpdatedAt = time.Now()

		if err := s.users.UpdatePasswordHash(txCtx, user); err != nil {
			return fmt.Errorf("update password hash: %w", err)
		}

		if err := s.sessions.RevokeAllForUser(txCtx, user.ID, time.Now()); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	s.log.InfoContext(ctx, "password changed",
		slog.String("user_id", user.ID.String()))

	return nil
}
