package domain

import (
	"time"

	"github.com/google/uuid"
)

// CourseFilter narrows and orders a course listing.
type CourseFilter struct {
	SortBy        CourseSortField
	CompletedOnly bool
}

// ModuleFilter narrows a module listing.
type ModuleFilter struct {
	Year          *ModuleYear
	CompletedOnly bool
}

// LogFilter narrows a journal listing. A nil OwnerID means all users;
// zero time bounds leave that side of the range open. Bounds are inclusive.
type LogFilter struct {
	OwnerID *uuid.UUID
	From    time.Time
	To      time.Time
}
