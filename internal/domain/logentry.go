package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is a single learning-log journal record. Link and LinkTitle are
// optional but must be set together.
type LogEntry struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Title      string
	Body       string
	LinkTitle  *string
	Link       *string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// LogScope selects whose journal entries a listing returns.
type LogScope string

const (
	// ScopeMine restricts the listing to the caller's own entries.
	ScopeMine LogScope = "mine"
	// ScopeUser restricts the listing to one named user's entries.
	ScopeUser LogScope = "user"
	// ScopeEveryone returns entries from all users.
	ScopeEveryone LogScope = "everyone"
)

// Valid reports whether s is a known scope.
func (s LogScope) Valid() bool {
	switch s {
	case ScopeMine, ScopeUser, ScopeEveryone:
		return true
	}
	return false
}
