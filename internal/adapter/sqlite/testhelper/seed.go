package testhelper

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row with a throwaway password hash.
// Returns a filled domain.User.
func SeedUser(t *testing.T, db *sql.DB) domain.User {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "testuser-" + uniqueSuffix(),
		PasswordHash: "$2a$04$notarealhashnotarealhashnotareal",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedCourse creates a course row for the given owner.
func SeedCourse(t *testing.T, db *sql.DB, ownerID uuid.UUID, name, provider, topic string, completed bool) domain.Course {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	course := domain.Course{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Provider:  provider,
		Topic:     topic,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO courses (id, owner_id, name, provider, topic, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		course.ID, course.OwnerID, course.Name, course.Provider, course.Topic, course.Completed,
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCourse insert course: %v", err)
	}

	return course
}
