package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// Hand-written func-field mocks for the service's private interfaces.

type userRepoMock struct {
	CreateFunc             func(ctx context.Context, u *domain.User) error
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFunc      func(ctx context.Context, username string) (*domain.User, error)
	UpdatePasswordHashFunc func(ctx context.Context, u *domain.User) error
}

func (m *userRepoMock) Create(ctx context.Context, u *domain.User) error {
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *userRepoMock) UpdatePasswordHash(ctx context.Context, u *domain.User) error {
	return m.UpdatePasswordHashFunc(ctx, u)
}

type sessionRepoMock struct {
	CreateFunc           func(ctx context.Context, s *domain.Session) error
	GetByTokenHashFunc   func(ctx context.Context, tokenHash string) (*domain.Session, error)
	RevokeFunc           func(ctx context.Context, id uuid.UUID, revokedAt time.Time) error
	RevokeAllForUserFunc func(ctx context.Context, userID uuid.UUID, revokedAt time.Time) error
	DeleteExpiredFunc    func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *sessionRepoMock) Create(ctx context.Context, s *domain.Session) error {
	return m.CreateFunc(ctx, s)
}

func (m *sessionRepoMock) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	return m.GetByTokenHashFunc(ctx, tokenHash)
}

func (m *sessionRepoMock) Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
	return m.RevokeFunc(ctx, id, revokedAt)
}

func (m *sessionRepoMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID, revokedAt time.Time) error {
	return m.RevokeAllForUserFunc(ctx, userID, revokedAt)
}

func (m *sessionRepoMock) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.DeleteExpiredFunc(ctx, cutoff)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}

type tokenManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID, username string) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, string, error)
	GenerateSessionTokenFunc func() (string, string, error)
}

func (m *tokenManagerMock) GenerateAccessToken(userID uuid.UUID, username string) (string, error) {
	return m.GenerateAccessTokenFunc(userID, username)
}

func (m *tokenManagerMock) ValidateAccessToken(token string) (uuid.UUID, string, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *tokenManagerMock) GenerateSessionToken() (string, string, error) {
	return m.GenerateSessionTokenFunc()
}
