// Package booking validates rental period writes before they are committed.
package booking

import (
	"time"
)

type Status string

const (
	StatusOccupied  Status = "occupied"
	StatusAvailable Status = "available"
)

func (s Status) Valid() bool {
	return s == StatusOccupied || s == StatusAvailable
}

// Period is the slice of a rental the guard needs. ID is zero for a new rental.
type Period struct {
	ID         int
	PropertyID int
	TenantID   *int
	TenantName string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
}

func (p Period) hasDates() bool {
	return p.CheckIn != nil && p.CheckOut != nil
}

// Policy selects the status/tenant coherence rule set.
type Policy struct {
	// RequireDatesWhenAvailable makes check-in/check-out mandatory for available periods too.
	RequireDatesWhenAvailable bool
}

type Guard struct {
	policy Policy
}

func NewGuard(policy Policy) *Guard {
	return &Guard{policy: policy}
}

func (g *Guard) Policy() Policy {
	return g.policy
}

// Validate checks candidate against the other rentals of the same property.
// Checks run in order: date range, status/tenant coherence, overlap. The first
// failure is returned as a *Violation; nil means the write may be committed.
func (g *Guard) Validate(candidate Period, existing []Period) error {
	if v := checkDateRange(candidate); v != nil {
		return v
	}
	if v := g.checkStatus(candidate); v != nil {
		return v
	}
	if candidate.Status != StatusOccupied {
		return nil
	}
	for _, other := range existing {
		if other.Status != StatusOccupied || !other.hasDates() {
			continue
		}
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if candidate.PropertyID != 0 && other.PropertyID != 0 && other.PropertyID != candidate.PropertyID {
			continue
		}
		if Overlaps(candidate, other) {
			conflict := other
			return &Violation{
				Kind:     OverlappingBooking,
				Field:    "check_in",
				Reason:   "property is already occupied in that date range",
				Conflict: &conflict,
			}
		}
	}
	return nil
}

func checkDateRange(p Period) *Violation {
	if !p.hasDates() {
		return nil
	}
	if !p.CheckOut.After(*p.CheckIn) {
		return &Violation{
			Kind:   InvalidDateRange,
			Field:  "check_out",
			Reason: "check-out must be after check-in",
		}
	}
	return nil
}

func (g *Guard) checkStatus(p Period) *Violation {
	switch p.Status {
	case StatusOccupied:
		if p.TenantID == nil {
			return inconsistent("tenant", "an occupied rental requires a tenant")
		}
		if p.CheckIn == nil {
			return inconsistent("check_in", "an occupied rental requires a check-in date")
		}
		if p.CheckOut == nil {
			return inconsistent("check_out", "an occupied rental requires a check-out date")
		}
	case StatusAvailable:
		if p.TenantID != nil {
			return inconsistent("tenant", "an available rental cannot have a tenant")
		}
		if g.policy.RequireDatesWhenAvailable && !p.hasDates() {
			return inconsistent("check_in", "check-in and check-out dates are required")
		}
	default:
		return inconsistent("status", "status must be occupied or available")
	}
	return nil
}

func inconsistent(field, reason string) *Violation {
	return &Violation{Kind: InconsistentStatus, Field: field, Reason: reason}
}

// Overlaps reports whether two dated periods intersect as half-open [check_in, check_out) ranges.
// A check-out on the same day as the next check-in is not an overlap.
func Overlaps(a, b Period) bool {
	if !a.hasDates() || !b.hasDates() {
		return false
	}
	return a.CheckIn.Before(*b.CheckOut) && b.CheckIn.Before(*a.CheckOut)
}
