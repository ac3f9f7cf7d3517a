package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"property-backend/internal/booking"
	"property-backend/internal/models"
	"property-backend/internal/observability"
	"property-backend/internal/repositories"
	"property-backend/internal/services"
	"property-backend/internal/timeutil"
	"property-backend/pkg/utils"
)

// conflictPayload describes the occupied rental an overlapping write collided with.
type conflictPayload struct {
	ID         int     `json:"id"`
	TenantID   *int    `json:"tenant_id"`
	TenantName string  `json:"tenant_name,omitempty"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
}

type violationPayload struct {
	Error    string           `json:"error"`
	Kind     booking.Kind     `json:"kind"`
	Field    string           `json:"field,omitempty"`
	Conflict *conflictPayload `json:"conflict,omitempty"`
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeutil.DateLayout)
	return &s
}

// writeError maps service and repository errors onto HTTP responses.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var v *booking.Violation
	var ve *services.ValidationError
	switch {
	case errors.As(err, &v):
		status := http.StatusUnprocessableEntity
		if v.Kind == booking.OverlappingBooking {
			status = http.StatusConflict
		}
		body := violationPayload{Error: v.Error(), Kind: v.Kind, Field: v.Field}
		if c := v.Conflict; c != nil {
			body.Conflict = &conflictPayload{
				ID:         c.ID,
				TenantID:   c.TenantID,
				TenantName: c.TenantName,
				CheckIn:    formatDatePtr(c.CheckIn),
				CheckOut:   formatDatePtr(c.CheckOut),
			}
		}
		utils.JSON(w, status, body)
	case errors.As(err, &ve):
		utils.JSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrDuplicate):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrAccountDisabled), errors.Is(err, services.ErrForbidden):
		utils.Error(w, http.StatusForbidden, err.Error())
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		observability.CaptureErr(err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func listOptions(r *http.Request) repositories.ListOptions {
	page, size := utils.ParsePagination(r)
	return repositories.ListOptions{Page: page, PageSize: size}
}

func writePage[T any](w http.ResponseWriter, opts repositories.ListOptions, results []T, total int) {
	if results == nil {
		results = []T{}
	}
	utils.JSON(w, http.StatusOK, models.Page[T]{
		Count:    total,
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Results:  results,
	})
}

// queryParser collects the first malformed query parameter.
type queryParser struct {
	r   *http.Request
	err error
}

func (p *queryParser) str(name string) string {
	return strings.TrimSpace(p.r.URL.Query().Get(name))
}

func (p *queryParser) intParam(name string) int {
	raw := p.str(name)
	if raw == "" || p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.err = &services.ValidationError{Field: name, Message: "must be an integer"}
	}
	return n
}

func (p *queryParser) dateParam(name string) *time.Time {
	raw := p.str(name)
	if raw == "" || p.err != nil {
		return nil
	}
	d, err := timeutil.ParseDate(raw)
	if err != nil {
		p.err = &services.ValidationError{Field: name, Message: "must be a date in YYYY-MM-DD format"}
		return nil
	}
	return &d
}

func (p *queryParser) decimalParam(name string) *decimal.Decimal {
	raw := p.str(name)
	if raw == "" || p.err != nil {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		p.err = &services.ValidationError{Field: name, Message: "must be a number"}
		return nil
	}
	return &d
}

func (p *queryParser) boolParam(name string) *bool {
	raw := p.str(name)
	if raw == "" || p.err != nil {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.err = &services.ValidationError{Field: name, Message: "must be true or false"}
		return nil
	}
	return &b
}

func paymentFilter(r *http.Request) (models.PaymentFilter, error) {
	q := &queryParser{r: r}
	f := models.PaymentFilter{
		DateFrom:  q.dateParam("date_from"),
		DateTo:    q.dateParam("date_to"),
		AmountMin: q.decimalParam("amount_min"),
		AmountMax: q.decimalParam("amount_max"),
	}
	return f, q.err
}
