package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"property-backend/internal/timeutil"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account suspended")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// optionalDate parses YYYY-MM-DD; empty input yields nil.
func optionalDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := timeutil.ParseDate(value)
	if err != nil {
		return nil, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

func requiredDate(field, value string) (time.Time, error) {
	d, err := optionalDate(field, value)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Time{}, invalid(field, "is required")
	}
	return *d, nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, "must not be negative")
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return invalid(field, "must have at most two decimal places")
	}
	return nil
}

func positive(field string, d decimal.Decimal) error {
	if err := nonNegative(field, d); err != nil {
		return err
	}
	if d.IsZero() {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

func oneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return invalid(field, "must be one of %s", strings.Join(allowed, ", "))
}

func nonNegativeInt(field string, n int) error {
	if n < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

// optionalURL accepts an empty value or an absolute http(s) link.
func optionalURL(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalid(field, "must be an http or https URL")
	}
	return value, nil
}
