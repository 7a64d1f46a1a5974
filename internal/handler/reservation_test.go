package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/repository"
	"github.com/evharten/workshop-booking/internal/service"
)

type fakeBookingService struct {
	res model.Reservation
	err error
}

func (f *fakeBookingService) Create(_ context.Context, _ service.CreateReservationInput) (model.Reservation, error) {
	return f.res, f.err
}

func postReservation(h *ReservationHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.Create(c)
	return rec
}

const reservationBody = `{"session_id":1,"name":"Eva","email":"eva@example.com","quantity":2}`

func TestCreateReservationResponses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"created", nil, http.StatusCreated},
		{"validation", &service.ValidationError{Field: "quantity", Reason: "must be between 1 and 10"}, http.StatusBadRequest},
		{"unknown session", repository.ErrSessionNotFound, http.StatusNotFound},
		{"sold out", repository.ErrCapacityExceeded, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeBookingService{err: tc.err}
			if tc.err == nil {
				svc.res = model.Reservation{ID: 1, SessionID: 1, Status: model.StatusPending, Quantity: 2}
			}
			rec := postReservation(NewReservationHandler(svc), reservationBody)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCreateReservationValidationFieldInBody(t *testing.T) {
	svc := &fakeBookingService{err: &service.ValidationError{Field: "email", Reason: "must be a valid address"}}
	rec := postReservation(NewReservationHandler(svc), reservationBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"email"`)
}

func TestCreateReservationBadJSON(t *testing.T) {
	rec := postReservation(NewReservationHandler(&fakeBookingService{}), `{"session_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
