package domain

import (
	"time"

	"github.com/google/uuid"
)

// Course is an external course a user tracks progress on.
// Name is unique per owner and doubles as the user-facing identifier.
type Course struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Provider  string
	Topic     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourseSortField enumerates the supported course list orderings.
type CourseSortField string

const (
	CourseSortByName     CourseSortField = "name"
	CourseSortByProvider CourseSortField = "provider"
)

// Valid reports whether f is a known sort field.
func (f CourseSortField) Valid() bool {
	switch f {
	case CourseSortByName, CourseSortByProvider:
		return true
	}
	return false
}

// Skill is an aggregated view over completed courses: a topic together
// with the number of completed courses covering it.
type Skill struct {
	Topic string
	Count int
}
