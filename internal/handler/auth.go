package handler

import (
	"context"  // provides context with cancellation for service calls
	"net/http" // HTTP status codes and primitives
	"strings"  // bearer prefix trimming for the refresh endpoint
	"time"     // timeouts for service calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/product-inventory/internal/config"
	"github.com/iliyamo/product-inventory/internal/middleware"
	"github.com/iliyamo/product-inventory/internal/service"
	"github.com/iliyamo/product-inventory/internal/validate"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg  config.Config
	Auth *service.AuthService
}

func NewAuthHandler(cfg config.Config, a *service.AuthService) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: a}
}

// Register: create user and return a token immediately. The request body
// has already been validated and coerced by the schema middleware.
func (h *AuthHandler) Register(c echo.Context) error {
	body := validate.Body(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, tok, err := h.Auth.Register(ctx,
		validate.Str(body, "username"),
		validate.Str(body, "email"),
		validate.Str(body, "password"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{
		"user":      u.Public(),
		"token":     tok,
		"expiresIn": h.Cfg.JWTExpiresIn,
	}})
}

// Login: verify credentials and return a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	body := validate.Body(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, tok, err := h.Auth.Login(ctx,
		validate.Str(body, "username"),
		validate.Str(body, "password"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"user":      u.Public(),
		"token":     tok,
		"expiresIn": h.Cfg.JWTExpiresIn,
	}})
}

// Profile returns the authenticated user attached by the gate.
func (h *AuthHandler) Profile(c echo.Context) error {
	u, _ := middleware.UserFrom(c)
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"user": u.Public()}})
}

// Refresh exchanges the presented (still valid) token for a new one with
// a fresh expiry, re-reading the identity so claims reflect current state.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := strings.TrimSpace(strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer "))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, tok, err := h.Auth.Refresh(ctx, raw)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"user":      u.Public(),
		"token":     tok,
		"expiresIn": h.Cfg.JWTExpiresIn,
	}})
}

// Logout is client-side only: tokens are stateless, so there is nothing
// to revoke server-side. The endpoint exists so clients have a uniform
// call to end a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"loggedOut": true}})
}

// Validate reports whether the presented token is valid, echoing the
// identity and expiry the gate verified.
func (h *AuthHandler) Validate(c echo.Context) error {
	u, _ := middleware.UserFrom(c)
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"valid":     true,
		"user":      u.Public(),
		"expiresAt": claims.ExpiresAt,
	}})
}
