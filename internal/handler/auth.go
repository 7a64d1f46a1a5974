package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evharten/workshop-booking/internal/utils"
)

// AuthHandler signs in the single admin operator.  Credentials live in the
// environment (email plus a bcrypt hash); there is no user table.
type AuthHandler struct {
	AdminEmail    string
	AdminPassHash string
	JWTSecret     string
	AccessTTLMin  int
}

// NewAuthHandler constructs an AuthHandler from config values.
func NewAuthHandler(adminEmail, adminPassHash, jwtSecret string, accessTTLMin int) *AuthHandler {
	return &AuthHandler{
		AdminEmail:    adminEmail,
		AdminPassHash: adminPassHash,
		JWTSecret:     jwtSecret,
		AccessTTLMin:  accessTTLMin,
	}
}

// Login handles POST /v1/admin/login.  On matching credentials it returns a
// short-lived access token for the admin endpoints.  The same 401 is
// returned for a wrong email and a wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Email != h.AdminEmail || !utils.VerifyPassword(h.AdminPassHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, body.Email, "ADMIN", h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}
