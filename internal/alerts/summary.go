package alerts

import "time"

// Summary is the end-of-run report of a sweep.
type Summary struct {
	Date             time.Time `json:"date"`
	LeadDays         []int     `json:"lead_days"`
	Sent             int       `json:"sent"`
	AlreadySent      int       `json:"already_sent"`
	FullyPaid        int       `json:"fully_paid"`
	MissingRecipient int       `json:"missing_recipient"`
	Failed           int       `json:"failed"`
	Duplicates       int       `json:"duplicates"`
	Locked           bool      `json:"locked"`
	Failures         []Failure `json:"failures,omitempty"`
}

type Failure struct {
	Category Category  `json:"category"`
	Entity   EntityRef `json:"entity"`
	Kind     string    `json:"alert_kind"`
	Err      string    `json:"error"`
}

// Skipped counts entities that needed no send this run.
func (s *Summary) Skipped() int {
	return s.AlreadySent + s.FullyPaid + s.MissingRecipient + s.Duplicates
}
