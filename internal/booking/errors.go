package booking

import "fmt"

type Kind string

const (
	InvalidDateRange   Kind = "invalid_date_range"
	InconsistentStatus Kind = "inconsistent_status"
	OverlappingBooking Kind = "overlapping_booking"
)

// Violation is a deterministic, non-retryable rejection of a rental write.
// Conflict is set only for OverlappingBooking when the clashing period is known.
type Violation struct {
	Kind     Kind
	Field    string
	Reason   string
	Conflict *Period
}

var (
	ErrInvalidDateRange   = &Violation{Kind: InvalidDateRange}
	ErrInconsistentStatus = &Violation{Kind: InconsistentStatus}
	ErrOverlappingBooking = &Violation{Kind: OverlappingBooking}
)

func (v *Violation) Error() string {
	if v.Conflict != nil {
		return fmt.Sprintf("%s: %s (conflicts with rental %d)", v.Kind, v.Reason, v.Conflict.ID)
	}
	if v.Reason == "" {
		return string(v.Kind)
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.Reason)
}

// Is matches any violation of the same kind, so errors.Is(err, ErrOverlappingBooking) works.
func (v *Violation) Is(target error) bool {
	t, ok := target.(*Violation)
	return ok && t.Kind == v.Kind
}
