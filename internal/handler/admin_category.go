package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/repository"
	"github.com/evharten/workshop-booking/internal/utils"
)

// AdminCategoryHandler manages workshop categories.  Descriptions are
// sanitized server-side; slugs are derived from the name and made unique
// with a bounded suffix loop.
type AdminCategoryHandler struct {
	categories *repository.CategoryRepo
	sanitizer  *bluemonday.Policy
}

// NewAdminCategoryHandler constructs the handler.
func NewAdminCategoryHandler(categories *repository.CategoryRepo) *AdminCategoryHandler {
	if categories == nil {
		panic("nil category repo passed to NewAdminCategoryHandler")
	}
	return &AdminCategoryHandler{categories: categories, sanitizer: newContentPolicy()}
}

type categoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// apply sanitizes and copies the body fields onto a category record.
func (h *AdminCategoryHandler) apply(body categoryBody, cat *model.Category) {
	cat.Name = strings.TrimSpace(body.Name)
	if desc := strings.TrimSpace(h.sanitizer.Sanitize(body.Description)); desc != "" {
		cat.Description = &desc
	} else {
		cat.Description = nil
	}
	if img := strings.TrimSpace(body.ImageURL); img != "" {
		cat.ImageURL = &img
	} else {
		cat.ImageURL = nil
	}
}

// slugExistsFn adapts the repo probe for utils.UniqueSlug, ignoring the
// category currently being edited (0 on create).
func (h *AdminCategoryHandler) slugExistsFn(ignoreID uint64) func(context.Context, string) (bool, error) {
	return func(ctx context.Context, candidate string) (bool, error) {
		return h.categories.SlugExists(ctx, candidate, ignoreID)
	}
}

// List handles GET /v1/admin/categories.
func (h *AdminCategoryHandler) List(c echo.Context) error {
	cats, err := h.categories.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, cats)
}

// Create handles POST /v1/admin/categories.
func (h *AdminCategoryHandler) Create(c echo.Context) error {
	var body categoryBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx := c.Request().Context()
	var cat model.Category
	h.apply(body, &cat)

	slug, err := utils.UniqueSlug(ctx, cat.Name, h.slugExistsFn(0))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not generate slug"})
	}
	cat.Slug = slug

	if err := h.categories.Create(ctx, &cat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, cat)
}

// Update handles PUT /v1/admin/categories/:id.  The slug is re-derived
// when the name changed, keeping its uniqueness guarantee.
func (h *AdminCategoryHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	var body categoryBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx := c.Request().Context()
	cat, err := h.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	nameChanged := strings.TrimSpace(body.Name) != cat.Name
	h.apply(body, &cat)
	if nameChanged {
		slug, err := utils.UniqueSlug(ctx, cat.Name, h.slugExistsFn(cat.ID))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not generate slug"})
		}
		cat.Slug = slug
	}

	if err := h.categories.Update(ctx, &cat); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /v1/admin/categories/:id.  A category with
// sessions cannot be deleted.
func (h *AdminCategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete a category with sessions"})
		case errors.Is(err, repository.ErrCategoryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
