package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cozycomfort/internal/common"
	"cozycomfort/internal/services"
)

type AuthHandlers struct {
	authSvc services.AuthService
}

func NewAuthHandlers(authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionUser struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Username    string `json:"username"`
	CompanyName string `json:"company_name"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("invalid request format: %w", common.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}

	tokens, user, err := h.authSvc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return common.RespondError(c, err)
	}

	return common.RespondOK(c, "Login successful.", map[string]interface{}{
		"tokens": tokens,
		"user": sessionUser{
			ID:          user.ID.String(),
			Type:        user.Role.String(),
			Username:    user.Username,
			CompanyName: user.CompanyName,
		},
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("invalid request format: %w", common.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}

	tokens, err := h.authSvc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, "Token refreshed.", tokens)
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandlers) Logout(c echo.Context) error {
	var req LogoutRequest
	_ = c.Bind(&req)

	accessToken := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	if err := h.authSvc.Logout(c.Request().Context(), accessToken, req.RefreshToken); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, "You have been logged out.", nil)
}

// Session reports whether the request carries a valid token. It is
// mounted without the JWT middleware so an anonymous caller gets a plain
// is_logged_in=false instead of a 401.
func (h *AuthHandlers) Session(c echo.Context) error {
	accessToken := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	claims, err := h.authSvc.ValidateToken(c.Request().Context(), accessToken)
	if accessToken == "" || err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"is_logged_in": false})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"is_logged_in": true,
		"user": map[string]string{
			"id":           claims.Subject,
			"type":         claims.Role,
			"company_name": claims.CompanyName,
		},
	})
}
