package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/repository"
)

// AdminSessionHandler manages scheduled workshop sessions.  A session that
// has already finished is read-only, and a session with reservations cannot
// be deleted.
type AdminSessionHandler struct {
	sessions   *repository.SessionRepo
	categories *repository.CategoryRepo
	now        func() time.Time
}

// NewAdminSessionHandler constructs the handler.
func NewAdminSessionHandler(sessions *repository.SessionRepo, categories *repository.CategoryRepo) *AdminSessionHandler {
	if sessions == nil || categories == nil {
		panic("nil repo passed to NewAdminSessionHandler")
	}
	return &AdminSessionHandler{sessions: sessions, categories: categories, now: time.Now}
}

type sessionBody struct {
	CategoryID uint64 `json:"category_id"`
	Date       string `json:"date"`       // "2006-01-02"
	StartTime  string `json:"start_time"` // RFC 3339
	EndTime    string `json:"end_time"`   // RFC 3339
	Capacity   int    `json:"capacity"`
	PriceCents int    `json:"price_cents"`
}

// parse validates the body and fills a session record.  Validation failures
// come back as a human-readable message for a 400 response.
func (b sessionBody) parse(s *model.Session) string {
	if b.CategoryID == 0 {
		return "category_id is required"
	}
	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return "date must be formatted as YYYY-MM-DD"
	}
	start, err := time.Parse(time.RFC3339, b.StartTime)
	if err != nil {
		return "start_time must be an RFC 3339 timestamp"
	}
	end, err := time.Parse(time.RFC3339, b.EndTime)
	if err != nil {
		return "end_time must be an RFC 3339 timestamp"
	}
	if !end.After(start) {
		return "end_time must be after start_time"
	}
	if b.Capacity < 1 {
		return "capacity must be at least 1"
	}
	if b.PriceCents <= 0 {
		return "price_cents must be positive"
	}
	s.CategoryID = b.CategoryID
	s.Date = date
	s.StartTime = start.UTC()
	s.EndTime = end.UTC()
	s.Capacity = b.Capacity
	s.PriceCents = b.PriceCents
	return ""
}

// List handles GET /v1/admin/sessions with an optional categoryId filter.
func (h *AdminSessionHandler) List(c echo.Context) error {
	var categoryID uint64
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid categoryId"})
		}
		categoryID = id
	}
	sessions, err := h.sessions.List(c.Request().Context(), categoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, sessions)
}

// Create handles POST /v1/admin/sessions.
func (h *AdminSessionHandler) Create(c echo.Context) error {
	var body sessionBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var s model.Session
	if msg := body.parse(&s); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	if _, err := h.categories.GetByID(ctx, s.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.sessions.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /v1/admin/sessions/:id.  Finished sessions are
// immutable so that past bookings keep their historical shape.
func (h *AdminSessionHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var body sessionBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	existing, err := h.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if existing.Finished(h.now()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "finished sessions cannot be edited"})
	}

	s := existing
	if msg := body.parse(&s); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if s.CategoryID != existing.CategoryID {
		if _, err := h.categories.GetByID(ctx, s.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	if err := h.sessions.Update(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /v1/admin/sessions/:id.  Sessions with any
// reservation history are kept for audit purposes.
func (h *AdminSessionHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	if err := h.sessions.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete a session with reservations"})
		case errors.Is(err, repository.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
