package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"property-backend/internal/booking"
	"property-backend/internal/repositories"
	"property-backend/internal/services"
)

func TestWriteErrorOverlapCarriesConflict(t *testing.T) {
	tenant := 7
	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC)
	err := fmt.Errorf("create rental: %w", &booking.Violation{
		Kind:   booking.OverlappingBooking,
		Field:  "check_in",
		Reason: "overlaps an occupied period",
		Conflict: &booking.Period{
			ID:         42,
			TenantID:   &tenant,
			TenantName: "Ana Ruiz",
			CheckIn:    &in,
			CheckOut:   &out,
			Status:     booking.StatusOccupied,
		},
	})

	rec := httptest.NewRecorder()
	writeError(rec, zap.NewNop(), err)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "overlapping_booking", body["kind"])
	conflict := body["conflict"].(map[string]any)
	assert.Equal(t, float64(42), conflict["id"])
	assert.Equal(t, float64(7), conflict["tenant_id"])
	assert.Equal(t, "Ana Ruiz", conflict["tenant_name"])
	assert.Equal(t, "2026-11-01", conflict["check_in"])
	assert.Equal(t, "2026-11-10", conflict["check_out"])
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&booking.Violation{Kind: booking.InvalidDateRange}, http.StatusUnprocessableEntity},
		{&booking.Violation{Kind: booking.InconsistentStatus}, http.StatusUnprocessableEntity},
		{&booking.Violation{Kind: booking.OverlappingBooking}, http.StatusConflict},
		{&services.ValidationError{Field: "amount", Message: "must not be negative"}, http.StatusBadRequest},
		{fmt.Errorf("rental 3: %w", repositories.ErrNotFound), http.StatusNotFound},
		{repositories.ErrDuplicate, http.StatusConflict},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrAccountDisabled, http.StatusForbidden},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, zap.NewNop(), tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, zap.NewNop(), fmt.Errorf("pq: password authentication failed"))
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestPaymentFilterParsing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?date_from=2026-01-01&amount_min=10.50", nil)
	f, err := paymentFilter(r)
	require.NoError(t, err)
	require.NotNil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.Equal(t, "10.5", f.AmountMin.String())

	r = httptest.NewRequest(http.MethodGet, "/?date_to=yesterday", nil)
	_, err = paymentFilter(r)
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "date_to", ve.Field)
}
