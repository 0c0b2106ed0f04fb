// Package query implements an in-memory query engine over record slices:
// predicate filtering, stable multi-pass sorting and inclusive date ranges.
// Storage adapters that cannot push queries down (the JSON file backend)
// load the owner's records and evaluate the query here; the SQL backend
// translates the same query into WHERE/ORDER BY clauses instead.
package query

import (
	"sort"
	"time"
)

// Predicate reports whether a record matches a filter condition.
type Predicate[T any] func(T) bool

// Less orders two records for sorting.
type Less[T any] func(a, b T) bool

// FilterBy returns the records matching pred, preserving input order.
func FilterBy[T any](records []T, pred Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortBy sorts records in place using a stable sort, so records equal under
// less keep their relative order. With desc the ordering is reversed.
func SortBy[T any](records []T, less Less[T], desc bool) {
	if desc {
		orig := less
		less = func(a, b T) bool { return orig(b, a) }
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

// DateRange is an inclusive [From, To] interval. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// EndOfDay promotes a date to the last instant of that calendar day, so a
// range ending "2024-03-01" includes everything that happened on March 1st.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Spec bundles the three query stages. Apply runs them in a fixed order:
// filters first, then the sort, then the date range.
type Spec[T any] struct {
	Filters []Predicate[T]
	Sort    Less[T]
	Desc    bool
	Range   DateRange
	At      func(T) time.Time
}

// Apply evaluates the spec against records and returns the result.
// The input slice is not modified.
func (s Spec[T]) Apply(records []T) []T {
	out := make([]T, len(records))
	copy(out, records)

	for _, pred := range s.Filters {
		out = FilterBy(out, pred)
	}
	if s.Sort != nil {
		SortBy(out, s.Sort, s.Desc)
	}
	if !s.Range.IsZero() && s.At != nil {
		rng := s.Range
		at := s.At
		out = FilterBy(out, func(r T) bool { return rng.Contains(at(r)) })
	}
	return out
}
