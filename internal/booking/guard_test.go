package booking

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(n int) *time.Time {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return &d
}

func tenant(id int) *int { return &id }

func occupied(id, from, to int) Period {
	return Period{ID: id, PropertyID: 1, TenantID: tenant(100 + id), CheckIn: day(from), CheckOut: day(to), Status: StatusOccupied}
}

func requireKind(t *testing.T, err error, kind Kind) *Violation {
	t.Helper()
	var v *Violation
	require.True(t, errors.As(err, &v), "expected *Violation, got %v", err)
	require.Equal(t, kind, v.Kind)
	return v
}

func TestValidateDateRange(t *testing.T) {
	g := NewGuard(Policy{})

	tests := []struct {
		name     string
		from, to int
	}{
		{"equal dates", 3, 3},
		{"reversed", 5, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := g.Validate(occupied(0, tc.from, tc.to), nil)
			requireKind(t, err, InvalidDateRange)
			require.ErrorIs(t, err, ErrInvalidDateRange)
		})
	}
}

func TestValidateDateRangeCheckedBeforeStatus(t *testing.T) {
	g := NewGuard(Policy{})
	p := Period{CheckIn: day(4), CheckOut: day(1), Status: StatusOccupied}

	requireKind(t, g.Validate(p, nil), InvalidDateRange)
}

func TestValidateStatusCoherence(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		period Period
		field  string
	}{
		{
			name:   "occupied without tenant",
			period: Period{CheckIn: day(0), CheckOut: day(3), Status: StatusOccupied},
			field:  "tenant",
		},
		{
			name:   "occupied without check-out",
			period: Period{TenantID: tenant(1), CheckIn: day(0), Status: StatusOccupied},
			field:  "check_out",
		},
		{
			name:   "available with tenant",
			period: Period{TenantID: tenant(1), CheckIn: day(0), CheckOut: day(3), Status: StatusAvailable},
			field:  "tenant",
		},
		{
			name:   "available without dates under strict policy",
			policy: Policy{RequireDatesWhenAvailable: true},
			period: Period{Status: StatusAvailable},
			field:  "check_in",
		},
		{
			name:   "unknown status",
			period: Period{Status: "ocupado"},
			field:  "status",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := requireKind(t, NewGuard(tc.policy).Validate(tc.period, nil), InconsistentStatus)
			require.Equal(t, tc.field, v.Field)
		})
	}
}

func TestValidateAvailableWithoutDatesUnderLenientPolicy(t *testing.T) {
	g := NewGuard(Policy{})
	require.NoError(t, g.Validate(Period{PropertyID: 1, Status: StatusAvailable}, []Period{occupied(1, 0, 10)}))
}

func TestValidateOverlap(t *testing.T) {
	g := NewGuard(Policy{})
	a := occupied(1, 10, 20)
	a.TenantName = "Ana"
	existing := []Period{a}

	t.Run("overlapping booking reports the conflict", func(t *testing.T) {
		v := requireKind(t, g.Validate(occupied(0, 15, 25), existing), OverlappingBooking)
		require.NotNil(t, v.Conflict)
		require.Equal(t, 1, v.Conflict.ID)
		require.Equal(t, "Ana", v.Conflict.TenantName)
		require.Equal(t, *day(10), *v.Conflict.CheckIn)
	})

	t.Run("contained booking", func(t *testing.T) {
		requireKind(t, g.Validate(occupied(0, 12, 13), existing), OverlappingBooking)
	})

	t.Run("disjoint booking succeeds", func(t *testing.T) {
		require.NoError(t, g.Validate(occupied(0, 30, 40), existing))
	})

	t.Run("back to back is not an overlap", func(t *testing.T) {
		require.NoError(t, g.Validate(occupied(0, 20, 25), existing))
		require.NoError(t, g.Validate(occupied(0, 5, 10), existing))
	})

	t.Run("update excludes its own row", func(t *testing.T) {
		require.NoError(t, g.Validate(occupied(1, 11, 21), existing))
	})

	t.Run("available rows do not block", func(t *testing.T) {
		free := Period{ID: 2, PropertyID: 1, CheckIn: day(50), CheckOut: day(60), Status: StatusAvailable}
		require.NoError(t, g.Validate(occupied(0, 55, 58), []Period{free}))
	})

	t.Run("other properties do not block", func(t *testing.T) {
		other := occupied(3, 10, 20)
		other.PropertyID = 2
		require.NoError(t, g.Validate(occupied(0, 10, 20), []Period{other}))
	})

	t.Run("available candidate skips the overlap check", func(t *testing.T) {
		c := Period{PropertyID: 1, CheckIn: day(12), CheckOut: day(14), Status: StatusAvailable}
		require.NoError(t, g.Validate(c, existing))
	})
}

// Accepting every candidate the guard lets through must never produce two overlapping occupied periods.
func TestValidateNeverAdmitsOverlap(t *testing.T) {
	g := NewGuard(Policy{})
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		var accepted []Period
		for i := 1; i <= 40; i++ {
			from := rng.Intn(120)
			to := from + rng.Intn(15) - 2
			candidate := occupied(i, from, to)

			err := g.Validate(candidate, accepted)
			if err == nil {
				accepted = append(accepted, candidate)
				continue
			}

			var v *Violation
			require.True(t, errors.As(err, &v))
			switch v.Kind {
			case InvalidDateRange:
				require.False(t, candidate.CheckOut.After(*candidate.CheckIn))
			case OverlappingBooking:
				require.True(t, Overlaps(candidate, *v.Conflict))
			default:
				t.Fatalf("unexpected violation %v", v)
			}
		}

		for i := range accepted {
			for j := i + 1; j < len(accepted); j++ {
				require.False(t, Overlaps(accepted[i], accepted[j]),
					"round %d: %d and %d overlap", round, accepted[i].ID, accepted[j].ID)
			}
		}
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := occupied(1, rng.Intn(50), 0)
		a.CheckOut = day(dayIndex(*a.CheckIn) + 1 + rng.Intn(10))
		b := occupied(2, rng.Intn(50), 0)
		b.CheckOut = day(dayIndex(*b.CheckIn) + 1 + rng.Intn(10))
		require.Equal(t, Overlaps(a, b), Overlaps(b, a))
	}
}

func dayIndex(d time.Time) int {
	return int(d.Sub(*day(0)).Hours() / 24)
}
