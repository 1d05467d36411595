package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "dcover/internal/errors"
	"dcover/internal/middleware"
	"dcover/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleAuthRequest is the identity returned by the client-side Google flow.
type GoogleAuthRequest struct {
	GoogleID string `json:"googleId" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	IDToken  string `json:"idToken"`
}

// GoogleAuth godoc
// @Summary Sign in with Google
// @Description Finds or creates the account for a Google identity and issues a 7-day token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google identity"
// @Success 200 {object} service.AuthResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req GoogleAuthRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.SignInWithGoogle(c.Request().Context(), service.GoogleSignIn{
		GoogleID: req.GoogleID,
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		IDToken:  req.IDToken,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return apperrors.Unauthorized("Authentication required")
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
