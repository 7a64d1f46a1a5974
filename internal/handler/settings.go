package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/repository"
)

// SettingsHandler serves the public slice of the site settings.
type SettingsHandler struct {
	settings *repository.SettingsRepo
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(settings *repository.SettingsRepo) *SettingsHandler {
	if settings == nil {
		panic("nil settings repo passed to NewSettingsHandler")
	}
	return &SettingsHandler{settings: settings}
}

// Get handles GET /v1/settings.  It returns the slider image URLs in
// display order plus the branding and contact fields every page render
// needs; admin-only fields (policy page content) are not exposed here.
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.settings.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	images, err := h.settings.SliderImages(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"slider_images": urls,
		"logo_url":      s.LogoURL,
		"email":         s.Email,
		"telephone":     s.Telephone,
		"address":       s.Address,
		"facebook_url":  s.FacebookURL,
		"instagram_url": s.InstagramURL,
		"youtube_url":   s.YoutubeURL,
	})
}
