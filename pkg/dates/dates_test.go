package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint before", "2025-06-01", "2025-06-05", "2025-06-06", "2025-06-10", false},
		{"disjoint after", "2025-06-06", "2025-06-10", "2025-06-01", "2025-06-05", false},
		{"touching endpoints overlap", "2025-06-10", "2025-06-12", "2025-06-12", "2025-06-14", true},
		{"contained", "2025-06-01", "2025-06-30", "2025-06-10", "2025-06-12", true},
		{"identical", "2025-06-10", "2025-06-12", "2025-06-10", "2025-06-12", true},
		{"single day vs single day", "2025-06-10", "2025-06-10", "2025-06-10", "2025-06-10", true},
		{"single day outside", "2025-06-10", "2025-06-10", "2025-06-11", "2025-06-11", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	pairs := [][4]string{
		{"2025-06-01", "2025-06-05", "2025-06-05", "2025-06-10"},
		{"2025-06-01", "2025-06-05", "2025-06-06", "2025-06-10"},
		{"2025-06-01", "2025-06-30", "2025-06-10", "2025-06-12"},
		{"2025-06-10", "2025-06-10", "2025-06-10", "2025-06-10"},
	}

	for _, p := range pairs {
		ab := Overlaps(date(p[0]), date(p[1]), date(p[2]), date(p[3]))
		ba := Overlaps(date(p[2]), date(p[3]), date(p[0]), date(p[1]))
		assert.Equal(t, ab, ba, "overlaps must be symmetric for %v", p)
	}
}

func TestOverlaps_IgnoresTimeComponent(t *testing.T) {
	aStart := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	bEnd := time.Date(2025, 6, 10, 0, 1, 0, 0, time.UTC)
	assert.True(t, Overlaps(aStart, aStart, bEnd, bEnd))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date("2025-06-10"), date("2025-06-10")))
	assert.Equal(t, 2, DaysBetween(date("2025-06-10"), date("2025-06-12")))
	assert.Equal(t, 0, DaysBetween(date("2025-06-12"), date("2025-06-10")), "clamped to zero")
}

func TestDaysBetween_PartialDayRoundsUp(t *testing.T) {
	a := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
}

func TestParse(t *testing.T) {
	got, err := Parse("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 10, got.Day())

	_, err = Parse("10.06.2025")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}
