package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const usersCollection = "users"

type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// UserRepo provides user persistence backed by a JSON file.
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a new user repository.
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create appends a new user.
// Returns domain.ErrAlreadyExists if the username is taken.
func (r *UserRepo) Create(_ context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[userRecord](r.store, usersCollection)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.Username == u.Username {
			return fmt.Errorf("user %s: %w", u.Username, domain.ErrAlreadyExists)
		}
	}

	records = append(records, toUserRecord(u))
	return writeAll(r.store, usersCollection, records)
}

// GetByID returns a user by ID.
// Returns domain.ErrNotFound if the user does not exist.
func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[userRecord](r.store, usersCollection)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id {
			return rec.toDomain(), nil
		}
	}

	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

// GetByUsername returns a user by username.
// Returns domain.ErrNotFound if the user does not exist.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := readAll[userRecord](r.store, usersCollection)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Username == username {
			return rec.toDomain(), nil
		}
	}

	return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
}

// UpdatePasswordHash replaces the user's password hash.
// Returns domain.ErrNotFound if the user does not exist.
func (r *UserRepo) UpdatePasswordHash(_ context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := readAll[userRecord](r.store, usersCollection)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.ID == u.ID {
			records[i].PasswordHash = u.PasswordHash
			records[i].UpdatedAt = u.UpdatedAt
			return writeAll(r.store, usersCollection, records)
		}
	}

	return fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
}
