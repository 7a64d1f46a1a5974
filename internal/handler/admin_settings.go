package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/repository"
)

// AdminSettingsHandler edits the singleton site settings record and the
// ordered slider image list.  Policy pages carry rich text, so their content
// is sanitized before it reaches the database.
type AdminSettingsHandler struct {
	settings  *repository.SettingsRepo
	sanitizer *bluemonday.Policy
}

// NewAdminSettingsHandler constructs the handler.
func NewAdminSettingsHandler(settings *repository.SettingsRepo) *AdminSettingsHandler {
	if settings == nil {
		panic("nil settings repo passed to NewAdminSettingsHandler")
	}
	return &AdminSettingsHandler{settings: settings, sanitizer: newContentPolicy()}
}

type settingsBody struct {
	LogoURL        string   `json:"logo_url"`
	Email          string   `json:"email"`
	Telephone      string   `json:"telephone"`
	Address        string   `json:"address"`
	KVK            string   `json:"kvk"`
	IBAN           string   `json:"iban"`
	FacebookURL    string   `json:"facebook_url"`
	InstagramURL   string   `json:"instagram_url"`
	YoutubeURL     string   `json:"youtube_url"`
	ContactLabel   string   `json:"contact_label"`
	ContactURL     string   `json:"contact_url"`
	PrivacyLabel   string   `json:"privacy_label"`
	PrivacyURL     string   `json:"privacy_url"`
	PrivacyContent string   `json:"privacy_content"`
	RefundLabel    string   `json:"refund_label"`
	RefundURL      string   `json:"refund_url"`
	RefundContent  string   `json:"refund_content"`
	SliderImages   []string `json:"slider_images"`
}

// Get handles GET /v1/admin/settings.
func (h *AdminSettingsHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.settings.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	images, err := h.settings.SliderImages(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if images == nil {
		images = []model.SliderImage{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"settings":      s,
		"slider_images": images,
	})
}

// Update handles PUT /v1/admin/settings.  The slider image list is replaced
// wholesale; slice order becomes the display order.
func (h *AdminSettingsHandler) Update(c echo.Context) error {
	var body settingsBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	s, err := h.settings.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	s.LogoURL = nilIfEmpty(body.LogoURL)
	s.Email = strings.TrimSpace(body.Email)
	s.Telephone = strings.TrimSpace(body.Telephone)
	s.Address = strings.TrimSpace(body.Address)
	s.KVK = strings.TrimSpace(body.KVK)
	s.IBAN = strings.TrimSpace(body.IBAN)
	s.FacebookURL = strings.TrimSpace(body.FacebookURL)
	s.InstagramURL = strings.TrimSpace(body.InstagramURL)
	s.YoutubeURL = strings.TrimSpace(body.YoutubeURL)
	s.ContactLabel = strings.TrimSpace(body.ContactLabel)
	s.ContactURL = strings.TrimSpace(body.ContactURL)
	s.PrivacyLabel = strings.TrimSpace(body.PrivacyLabel)
	s.PrivacyURL = strings.TrimSpace(body.PrivacyURL)
	s.PrivacyContent = nilIfEmpty(h.sanitizer.Sanitize(body.PrivacyContent))
	s.RefundLabel = strings.TrimSpace(body.RefundLabel)
	s.RefundURL = strings.TrimSpace(body.RefundURL)
	s.RefundContent = nilIfEmpty(h.sanitizer.Sanitize(body.RefundContent))

	if err := h.settings.Save(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	urls := make([]string, 0, len(body.SliderImages))
	for _, u := range body.SliderImages {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if err := h.settings.ReplaceSliderImages(ctx, urls); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return h.Get(c)
}

// nilIfEmpty maps an empty (after trimming) string to a nil pointer.
func nilIfEmpty(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
