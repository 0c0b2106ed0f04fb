package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModuleYear identifies the programme year (or exam stage) a module belongs to.
type ModuleYear string

const (
	YearFirst     ModuleYear = "First"
	YearSecond    ModuleYear = "Second"
	YearThird     ModuleYear = "Third"
	YearPlacement ModuleYear = "Placement"
	YearFinal     ModuleYear = "Final"
)

// Valid reports whether y is one of the known module years.
func (y ModuleYear) Valid() bool {
	switch y {
	case YearFirst, YearSecond, YearThird, YearPlacement, YearFinal:
		return true
	}
	return false
}

// ModuleYears lists every valid module year in programme order.
func ModuleYears() []ModuleYear {
	return []ModuleYear{YearFirst, YearSecond, YearThird, YearPlacement, YearFinal}
}

// Module is a university module a user tracks progress on.
// Name is unique per owner.
type Module struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Year      ModuleYear
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
