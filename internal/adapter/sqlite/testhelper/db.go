// Package testhelper provides shared setup for SQLite repository tests:
// an in-memory migrated database plus seed helpers.
package testhelper

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/heartmarshall/studylog-backend/internal/adapter/sqlite"
)

// SetupTestDB opens a fresh in-memory SQLite database with all migrations
// applied. The handle is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlite.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
