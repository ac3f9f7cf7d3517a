package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateUsesBusinessTimezone(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	if err != nil {
		t.Skip("tzdata not available")
	}
	SetLocation(lima)
	defer SetLocation(time.UTC)

	// 02:00 UTC on the 10th is still the 9th in Lima (UTC-5).
	instant := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Date(instant))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 5, DaysBetween(a, b))
	require.Equal(t, -5, DaysBetween(b, a))
	require.Equal(t, b, AddDays(a, 5))
}

func TestNextDailyRun(t *testing.T) {
	SetLocation(time.UTC)
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	require.Equal(t, time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC), NextDailyRun(now, 8, 0))
	require.Equal(t, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), NextDailyRun(now, 10, 0))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-12-31")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("31/12/2026")
	require.Error(t, err)
}
