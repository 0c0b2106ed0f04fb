package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/heartmarshall/studylog-backend/internal/auth"
	"github.com/heartmarshall/studylog-backend/internal/config"
	"github.com/heartmarshall/studylog-backend/internal/domain"
	"github.com/heartmarshall/studylog-backend/pkg/ctxutil"
)

// defaultCfg returns a config suitable for most tests.
func defaultCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-characters!!",
		JWTIssuer:        "studylog-test",
		AccessTokenTTL:   15 * time.Minute,
		SessionTTL:       30 * 24 * time.Hour,
		PasswordHashCost: 4, // minimum cost for fast tests
	}
}

// hashPassword returns a bcrypt hash for testing.
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	return string(hash)
}

// passthroughTx runs the callback with the same context, no transaction.
func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

// staticTokens returns a token manager mock issuing fixed tokens.
func staticTokens() *tokenManagerMock {
	return &tokenManagerMock{
		GenerateAccessTokenFunc: func(uuid.UUID, string) (string, error) {
			return "access_token_123", nil
		},
		GenerateSessionTokenFunc: func() (string, string, error) {
			return "raw_session_123", "hash_session_123", nil
		},
		ValidateAccessTokenFunc: func(string) (uuid.UUID, string, error) {
			return uuid.Nil, "", errors.New("not configured")
		},
	}
}

// ─── Register Tests ─────────────────────────────────────────────────────────

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var createdUser *domain.User
	usersMock := &userRepoMock{
		CreateFunc: func(ctx context.Context, u *domain.User) error {
			createdUser = u
			return nil
		},
	}

	var createdSession *domain.Session
	sessionsMock := &sessionRepoMock{
		CreateFunc: func(ctx context.Context, s *domain.Session) error {
			createdSession = s
			return nil
		},
	}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	result, err := svc.Register(ctx, RegisterInput{
		Username:        "alice-1",
		Password:        "Sup3r-secret",
		PasswordConfirm: "Sup3r-secret",
	})

	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.AccessToken != "access_token_123" {
		t.Errorf("AccessToken: got=%s, want=%s", result.AccessToken, "access_token_123")
	}
	if result.SessionToken != "raw_session_123" {
		t.Errorf("SessionToken: got=%s, want=%s", result.SessionToken, "raw_session_123")
	}
	if result.User == nil {
		t.Fatal("User is nil")
	}

	if createdUser == nil {
		t.Fatal("users.Create was not called")
	}
	if createdUser.Username != "alice-1" {
		t.Errorf("created username: got=%s, want=alice-1", createdUser.Username)
	}
	if createdUser.PasswordHash == "" || createdUser.PasswordHash == "Sup3r-secret" {
		t.Error("password was not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte("Sup3r-secret")); err != nil {
		t.Errorf("stored hash does not verify the password: %v", err)
	}

	if createdSession == nil {
		t.Fatal("sessions.Create was not called")
	}
	if createdSession.TokenHash != "hash_session_123" {
		t.Errorf("session stores hash: got=%s, want=hash_session_123", createdSession.TokenHash)
	}
	if createdSession.UserID != createdUser.ID {
		t.Error("session is not bound to the created user")
	}
	if !createdSession.ExpiresAt.After(time.Now()) {
		t.Error("session expiry is not in the future")
	}
}

func TestService_Register_TrimsUsername(t *testing.T) {
	t.Parallel()

	usersMock := &userRepoMock{
		CreateFunc: func(ctx context.Context, u *domain.User) error {
			if u.Username != "alice" {
				t.Errorf("username not trimmed: got=%q", u.Username)
			}
			return nil
		},
	}
	sessionsMock := &sessionRepoMock{
		CreateFunc: func(ctx context.Context, s *domain.Session) error { return nil },
	}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	if _, err := svc.Register(context.Background(), RegisterInput{
		Username:        "  alice  ",
		Password:        "Sup3r-secret",
		PasswordConfirm: "Sup3r-secret",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
}

func TestService_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{
			name:  "username with punctuation",
			input: RegisterInput{Username: "al:ce", Password: "Sup3r-secret", PasswordConfirm: "Sup3r-secret"},
		},
		{
			name:  "username too short",
			input: RegisterInput{Username: "al", Password: "Sup3r-secret", PasswordConfirm: "Sup3r-secret"},
		},
		{
			name:  "weak password",
			input: RegisterInput{Username: "alice", Password: "password", PasswordConfirm: "password"},
		},
		{
			name:  "password mismatch",
			input: RegisterInput{Username: "alice", Password: "Sup3r-secret", PasswordConfirm: "Sup3r-secret2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			usersMock := &userRepoMock{
				CreateFunc: func(ctx context.Context, u *domain.User) error {
					t.Error("users.Create must not be called on invalid input")
					return nil
				},
			}
			sessionsMock := &sessionRepoMock{}

			svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestService_Register_UsernameTaken(t *testing.T) {
	t.Parallel()

	usersMock := &userRepoMock{
		CreateFunc: func(ctx context.Context, u *domain.User) error {
			return domain.ErrAlreadyExists
		},
	}
	sessionsMock := &sessionRepoMock{}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Password:        "Sup3r-secret",
		PasswordConfirm: "Sup3r-secret",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

// ─── Login Tests ────────────────────────────────────────────────────────────

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	hash := hashPassword(t, "Sup3r-secret")

	usersMock := &userRepoMock{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				t.Errorf("GetByUsername called with %q, want alice", username)
			}
			return &domain.User{ID: userID, Username: "alice", PasswordHash: hash}, nil
		},
	}
	sessionsMock := &sessionRepoMock{
		CreateFunc: func(ctx context.Context, s *domain.Session) error { return nil },
	}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	result, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "Sup3r-secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.User.ID != userID {
		t.Errorf("User.ID: got=%s, want=%s", result.User.ID, userID)
	}
	if result.SessionToken != "raw_session_123" {
		t.Errorf("SessionToken: got=%s, want=raw_session_123", result.SessionToken)
	}
}

func TestService_Login_UnknownUser(t *testing.T) {
	t.Parallel()

	usersMock := &userRepoMock{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	sessionsMock := &sessionRepoMock{}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "Sup3r-secret"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	hash := hashPassword(t, "Sup3r-secret")
	usersMock := &userRepoMock{
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: hash}, nil
		},
	}
	sessionsMock := &sessionRepoMock{
		CreateFunc: func(ctx context.Context, s *domain.Session) error {
			t.Error("sessions.Create must not be called on wrong password")
			return nil
		},
	}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	_, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "Wr0ng-secret"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ─── Refresh Tests ──────────────────────────────────────────────────────────

func TestService_Refresh_RotatesSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()
	raw := "old_session_token"
	hash := auth.HashToken(raw)

	sessionsMock := &sessionRepoMock{
		GetByTokenHashFunc: func(ctx context.Context, tokenHash string) (*domain.Session, error) {
			if tokenHash != hash {
				t.Errorf("GetByTokenHash called with %q, want %q", tokenHash, hash)
			}
			return &domain.Session{
				ID:        sessionID,
				UserID:    userID,
				TokenHash: hash,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
		RevokeFunc: func(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
			if id != sessionID {
				t.Errorf("Revoke called with %s, want %s", id, sessionID)
			}
			return nil
		},
		CreateFunc: func(ctx context.Context, s *domain.Session) error {
			if s.TokenHash != "hash_session_123" {
				t.Errorf("rotated session hash: got=%s", s.TokenHash)
			}
			return nil
		},
	}
	usersMock := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "alice"}, nil
		},
	}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	result, err := svc.Refresh(context.Background(), RefreshInput{SessionToken: raw})
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if result.SessionToken != "raw_session_123" {
		t.Errorf("SessionToken: got=%s, want=raw_session_123", result.SessionToken)
	}
}

func TestService_Refresh_Unauthorized(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	revokedAt := time.Now().Add(-time.Minute)

	tests := []struct {
		name    string
		session *domain.Session
		getErr  error
	}{
		{name: "unknown token", getErr: domain.ErrNotFound},
		{
			name: "expired session",
			session: &domain.Session{
				ID: uuid.New(), UserID: userID,
				ExpiresAt: time.Now().Add(-time.Hour),
			},
		},
		{
			name: "revoked session",
			session: &domain.Session{
				ID: uuid.New(), UserID: userID,
				ExpiresAt: time.Now().Add(time.Hour),
				RevokedAt: &revokedAt,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sessionsMock := &sessionRepoMock{
				GetByTokenHashFunc: func(ctx context.Context, tokenHash string) (*domain.Session, error) {
					return tt.session, tt.getErr
				},
			}
			usersMock := &userRepoMock{
				GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
					return &domain.User{ID: userID}, nil
				},
			}

			svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

			_, err := svc.Refresh(context.Background(), RefreshInput{SessionToken: "some_token"})
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestService_Refresh_DeletedUser(t *testing.T) {
	t.Parallel()

	sessionsMock := &sessionRepoMock{
		GetByTokenHashFunc: func(ctx context.Context, tokenHash string) (*domain.Session, error) {
			return &domain.Session{
				ID: uuid.New(), UserID: uuid.New(),
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	usersMock := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	_, err := svc.Refresh(context.Background(), RefreshInput{SessionToken: "some_token"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ─── Logout / ValidateToken Tests ───────────────────────────────────────────

func TestService_Logout_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	revoked := false

	sessionsMock := &sessionRepoMock{
		RevokeAllForUserFunc: func(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
			if id != userID {
				t.Errorf("RevokeAllForUser called with %s, want %s", id, userID)
			}
			revoked = true
			return nil
		},
	}

	svc := NewService(slog.Default(), &userRepoMock{}, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	ctx := ctxutil.WithUserID(context.Background(), userID)
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if !revoked {
		t.Error("RevokeAllForUser was not called")
	}
}

func TestService_Logout_NoUserInContext(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &userRepoMock{}, &sessionRepoMock{}, passthroughTx(), staticTokens(), defaultCfg())

	err := svc.Logout(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_ValidateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tokens := &tokenManagerMock{
		ValidateAccessTokenFunc: func(token string) (uuid.UUID, string, error) {
			if token == "good" {
				return userID, "alice", nil
			}
			return uuid.Nil, "", errors.New("bad token")
		},
	}

	svc := NewService(slog.Default(), &userRepoMock{}, &sessionRepoMock{}, passthroughTx(), tokens, defaultCfg())

	gotID, gotName, err := svc.ValidateToken(context.Background(), "good")
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if gotID != userID || gotName != "alice" {
		t.Errorf("ValidateToken: got=(%s, %s), want=(%s, alice)", gotID, gotName, userID)
	}

	if _, _, err := svc.ValidateToken(context.Background(), "bad"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ─── ChangePassword Tests ───────────────────────────────────────────────────

func TestService_ChangePassword_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	oldHash := hashPassword(t, "Old-passw0rD")

	var updatedUser *domain.User
	usersMock := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "alice", PasswordHash: oldHash}, nil
		},
		UpdatePasswordHashFunc: func(ctx context.Context, u *domain.User) error {
			updatedUser = u
			return nil
		},
	}

	revoked := false
	sessionsMock := &sessionRepoMock{
		RevokeAllForUserFunc: func(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
			revoked = true
			return nil
		},
	}

	svc := NewService(slog.Default(), usersMock, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	ctx := ctxutil.WithUserID(context.Background(), userID)
	err := svc.ChangePassword(ctx, ChangePasswordInput{
		CurrentPassword:    "Old-passw0rD",
		NewPassword:        "New-passw0rD",
		NewPasswordConfirm: "New-passw0rD",
	})
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if updatedUser == nil {
		t.Fatal("UpdatePasswordHash was not called")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updatedUser.PasswordHash), []byte("New-passw0rD")); err != nil {
		t.Errorf("new hash does not verify the new password: %v", err)
	}
	if !revoked {
		t.Error("existing sessions were not revoked")
	}
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	oldHash := hashPassword(t, "Old-passw0rD")

	usersMock := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: userID, PasswordHash: oldHash}, nil
		},
		UpdatePasswordHashFunc: func(ctx context.Context, u *domain.User) error {
			t.Error("UpdatePasswordHash must not be called on wrong current password")
			return nil
		},
	}

	svc := NewService(slog.Default(), usersMock, &sessionRepoMock{}, passthroughTx(), staticTokens(), defaultCfg())

	ctx := ctxutil.WithUserID(context.Background(), userID)
	err := svc.ChangePassword(ctx, ChangePasswordInput{
		CurrentPassword:    "Wrong-passw0rD",
		NewPassword:        "New-passw0rD",
		NewPasswordConfirm: "New-passw0rD",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_ChangePassword_WeakNew(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &userRepoMock{}, &sessionRepoMock{}, passthroughTx(), staticTokens(), defaultCfg())

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	err := svc.ChangePassword(ctx, ChangePasswordInput{
		CurrentPassword:    "Old-passw0rD",
		NewPassword:        "weak",
		NewPasswordConfirm: "weak",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ─── Cleanup Tests ──────────────────────────────────────────────────────────

func TestService_CleanupExpiredSessions(t *testing.T) {
	t.Parallel()

	sessionsMock := &sessionRepoMock{
		DeleteExpiredFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 7, nil
		},
	}

	svc := NewService(slog.Default(), &userRepoMock{}, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	count, err := svc.CleanupExpiredSessions(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpiredSessions returned error: %v", err)
	}
	if count != 7 {
		t.Errorf("count: got=%d, want=7", count)
	}
}

func TestService_CleanupExpiredSessions_Error(t *testing.T) {
	t.Parallel()

	sessionsMock := &sessionRepoMock{
		DeleteExpiredFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, errors.New("storage down")
		},
	}

	svc := NewService(slog.Default(), &userRepoMock{}, sessionsMock, passthroughTx(), staticTokens(), defaultCfg())

	if _, err := svc.CleanupExpiredSessions(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
