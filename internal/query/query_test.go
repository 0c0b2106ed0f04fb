package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studylog-backend/internal/query"
)

type record struct {
	Name string
	Rank int
	At   time.Time
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestFilterBy(t *testing.T) {
	t.Parallel()

	records := []record{
		{Name: "a", Rank: 1},
		{Name: "b", Rank: 2},
		{Name: "c", Rank: 1},
	}

	got := query.FilterBy(records, func(r record) bool { return r.Rank == 1 })

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}

func TestSortBy(t *testing.T) {
	t.Parallel()

	byRank := func(a, b record) bool { return a.Rank < b.Rank }

	t.Run("ascending", func(t *testing.T) {
		t.Parallel()

		records := []record{{Name: "c", Rank: 3}, {Name: "a", Rank: 1}, {Name: "b", Rank: 2}}
		query.SortBy(records, byRank, false)

		assert.Equal(t, []record{{Name: "a", Rank: 1}, {Name: "b", Rank: 2}, {Name: "c", Rank: 3}}, records)
	})

	t.Run("descending", func(t *testing.T) {
		t.Parallel()

		records := []record{{Name: "a", Rank: 1}, {Name: "c", Rank: 3}, {Name: "b", Rank: 2}}
		query.SortBy(records, byRank, true)

		assert.Equal(t, []record{{Name: "c", Rank: 3}, {Name: "b", Rank: 2}, {Name: "a", Rank: 1}}, records)
	})

	t.Run("stable on equal keys", func(t *testing.T) {
		t.Parallel()

		records := []record{{Name: "x", Rank: 1}, {Name: "y", Rank: 1}, {Name: "z", Rank: 1}}
		query.SortBy(records, byRank, true)

		assert.Equal(t, "x", records[0].Name)
		assert.Equal(t, "z", records[2].Name)
	})
}

func TestDateRangeContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rng  query.DateRange
		at   time.Time
		want bool
	}{
		{name: "inside", rng: query.DateRange{From: day(1), To: day(10)}, at: day(5), want: true},
		{name: "on lower bound", rng: query.DateRange{From: day(1), To: day(10)}, at: day(1), want: true},
		{name: "on upper bound", rng: query.DateRange{From: day(1), To: day(10)}, at: day(10), want: true},
		{name: "before", rng: query.DateRange{From: day(2), To: day(10)}, at: day(1), want: false},
		{name: "after", rng: query.DateRange{From: day(1), To: day(9)}, at: day(10), want: false},
		{name: "open lower", rng: query.DateRange{To: day(10)}, at: day(1), want: true},
		{name: "open upper", rng: query.DateRange{From: day(1)}, at: day(20), want: true},
		{name: "fully open", rng: query.DateRange{}, at: day(15), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.rng.Contains(tt.at))
		})
	}
}

func TestEndOfDay(t *testing.T) {
	t.Parallel()

	got := query.EndOfDay(time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC))

	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, 23, got.Hour())
	assert.True(t, got.Before(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.After(time.Date(2024, time.March, 1, 23, 59, 59, 0, time.UTC).Add(-time.Nanosecond)))
}

func TestSpecApply(t *testing.T) {
	t.Parallel()

	records := []record{
		{Name: "old", Rank: 1, At: day(1)},
		{Name: "skip", Rank: 9, At: day(5)},
		{Name: "mid", Rank: 2, At: day(10)},
		{Name: "new", Rank: 3, At: day(20)},
	}

	spec := query.Spec[record]{
		Filters: []query.Predicate[record]{
			func(r record) bool { return r.Rank < 5 },
		},
		Sort:  func(a, b record) bool { return a.At.Before(b.At) },
		Desc:  true,
		Range: query.DateRange{From: day(2), To: day(20)},
		At:    func(r record) time.Time { return r.At },
	}

	got := spec.Apply(records)

	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Name)
	assert.Equal(t, "mid", got[1].Name)

	// input is untouched
	assert.Equal(t, "old", records[0].Name)
	assert.Len(t, records, 4)
}
