package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query          string
		page, pageSize int
	}{
		{"", 1, 20},
		{"page=3&page_size=50", 3, 50},
		{"page=0&page_size=-4", 1, 20},
		{"page=x&page_size=1000", 1, 100},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		page, size := ParsePagination(r)
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.pageSize, size, tc.query)
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"bad"}`, rec.Body.String())
}
