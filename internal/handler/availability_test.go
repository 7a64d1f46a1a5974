package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/evharten/workshop-booking/internal/service"
)

type fakeAvailability struct {
	days map[string]service.DayAvailability
	err  error
}

func (f *fakeAvailability) Month(_ context.Context, _ uint64, _ int, _ time.Month) (map[string]service.DayAvailability, error) {
	return f.days, f.err
}

func getAvailability(h *AvailabilityHandler, query string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/availability?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.Month(c)
	return rec
}

func TestMonthQueryValidation(t *testing.T) {
	h := NewAvailabilityHandler(&fakeAvailability{})
	cases := []struct {
		name  string
		query string
	}{
		{"missing category", "month=3&year=2026"},
		{"zero category", "categoryId=0&month=3&year=2026"},
		{"month zero", "categoryId=1&month=0&year=2026"},
		{"month thirteen", "categoryId=1&month=13&year=2026"},
		{"year out of range", "categoryId=1&month=3&year=1999"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := getAvailability(h, tc.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMonthReturnsCalendar(t *testing.T) {
	h := NewAvailabilityHandler(&fakeAvailability{days: map[string]service.DayAvailability{
		"2026-03-07": {Remaining: 5, Times: []service.Timeslot{{ID: 1, Remaining: 5}}},
	}})
	rec := getAvailability(h, "categoryId=1&month=3&year=2026")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2026-03-07"`)
}
