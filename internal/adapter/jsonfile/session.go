package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const sessionsCollection = "sessions"

type sessionRecord struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	TokenHash string     `json:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

func toSessionRecord(s *domain.Session) sessionRecord {
	return sessionRecord{
		ID:        s.ID,
		UserID:    s.UserID,
		TokenHash: s.TokenHash,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		RevokedAt: s.RevokedAt,
	}
}

func (r sessionRecord) toDomain() *domain.Session {
	return &domain.Session{
		ID:        r.ID,
		UserID:    r.UserID,
		TokenHash: r.TokenHash,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		RevokedAt: r.RevokedAt,
	}
}

// SessionRepo provides session persistence backed by a JSON file.
type SessionRepo struct {
	store *Store
}

// NewSessionRepo creates a new session repository.
func NewSessionRepo(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

// Create appends a new session.
func (r *SessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[sessionRecord](r.store, sessionsCollection)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.TokenHash == s.TokenHash {
			return fmt.Errorf("session %s: %w", s.ID, domain.ErrAlreadyExists)
		}
	}

	records = append(records, toSessionRecord(s))
	return writeAll(r.store, sessionsCollection, records)
}

// GetByTokenHash returns a session by its token hash.
// Returns domain.ErrNotFound if no such session exists.
func (r *SessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[sessionRecord](r.store, sessionsCollection)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.TokenHash == tokenHash {
			return rec.toDomain(), nil
		}
	}

	return nil, fmt.Errorf("session by token: %w", domain.ErrNotFound)
}

// Revoke marks a session as revoked.
// Returns domain.ErrNotFound if the session does not exist or is already revoked.
func (r *SessionRepo) Revoke(_ context.Context, id uuid.UUID, revokedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[sessionRecord](r.store, sessionsCollection)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.ID == id && rec.RevokedAt == nil {
			records[i].RevokedAt = &revokedAt
			return writeAll(r.store, sessionsCollection, records)
		}
	}

	return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
}

// RevokeAllForUser revokes every active session of a user.
func (r *SessionRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID, revokedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[sessionRecord](r.store, sessionsCollection)
	if err != nil {
		return err
	}

	changed := false
	for i, rec := range records {
		if rec.UserID == userID && rec.RevokedAt == nil {
			records[i].RevokedAt = &revokedAt
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return writeAll(r.store, sessionsCollection, records)
}

// DeleteExpired removes sessions that expired before the cutoff, plus any
// revoked sessions. Returns the number of records removed.
func (r *SessionRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[sessionRecord](r.store, sessionsCollection)
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	var removed int64
	for _, rec := range records {
		if rec.ExpiresAt.Before(cutoff) || rec.RevokedAt != nil {
			removed++
			continue
		}
		kept = append(kept, rec)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := writeAll(r.store, sessionsCollection, kept); err != nil {
		return 0, err
	}
	return removed, nil
}
