package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriods(t *testing.T) {
	t.Parallel()
	// Wednesday.
	now := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	periods := Periods(now)
	require.Len(t, periods, 5)

	tests := []struct {
		label string
		start time.Time
		end   time.Time
	}{
		{ThisWeek, day(2026, 3, 8), now},
		{ThisMonth, day(2026, 3, 1), now},
		{LastMonth, day(2026, 2, 1), day(2026, 3, 1)},
		{ThisYear, day(2026, 1, 1), now},
		{LastYear, day(2025, 1, 1), day(2026, 1, 1)},
	}
	for i, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.label, periods[i].Label)
			require.True(t, tt.start.Equal(periods[i].StartDate), "start %s", periods[i].StartDate)
			require.True(t, tt.end.Equal(periods[i].EndDate), "end %s", periods[i].EndDate)
		})
	}

	t.Run("week starting on sunday", func(t *testing.T) {
		t.Parallel()
		sunday := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
		require.True(t, day(2026, 3, 8).Equal(Periods(sunday)[0].StartDate))
	})

	t.Run("january rolls back a year", func(t *testing.T) {
		t.Parallel()
		jan := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
		last := Periods(jan)[2]
		require.True(t, day(2025, 12, 1).Equal(last.StartDate))
		require.True(t, day(2026, 1, 1).Equal(last.EndDate))
	})

	t.Run("labels match periods", func(t *testing.T) {
		t.Parallel()
		for i, label := range Labels() {
			require.Equal(t, label, periods[i].Label)
		}
	})
}

func TestFindPeriod(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)

	p, err := FindPeriod("  last month ", now)
	require.NoError(t, err)
	require.Equal(t, LastMonth, p.Label)

	_, err = FindPeriod("Next Decade", now)
	require.ErrorIs(t, err, ErrUnknownPeriod)
}
