package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/repository"
)

// CategoryHandler serves the public, read-only category surface.
type CategoryHandler struct {
	categories *repository.CategoryRepo
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	if categories == nil {
		panic("nil category repo passed to NewCategoryHandler")
	}
	return &CategoryHandler{categories: categories}
}

// List handles GET /v1/categories.
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.categories.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, cats)
}

// GetBySlug handles GET /v1/categories/:slug.
func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slug"})
	}
	cat, err := h.categories.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, cat)
}
