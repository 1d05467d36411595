package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/service"
)

// UserHandler handles profiles, discovery and admin moderation.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest is the editable part of a profile.
type UpdateProfileRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Bio      *string `json:"bio" validate:"omitempty,max=1000"`
	PhotoURL *string `json:"photoUrl"`
	Username *string `json:"username"`
}

// SuspendRequest suspends or reinstates a user.
type SuspendRequest struct {
	Suspended *bool `json:"suspended" validate:"required"`
}

// RoleRequest changes a user's role.
type RoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Suggestions godoc
// @Summary Users to follow
// @Description Up to 10 active users the caller does not follow, ranked by songs then followers.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserSummary
// @Router /users/suggestions [get]
func (h *UserHandler) Suggestions(c echo.Context) error {
	users, err := h.userService.Suggestions(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Search godoc
// @Summary Search users
// @Tags users
// @Produce json
// @Param q query string true "Name or username fragment"
// @Success 200 {array} model.UserSummary
// @Router /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	users, err := h.userService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AdminUserView
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Suspend godoc
// @Summary Suspend or reinstate a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body SuspendRequest true "Suspension"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/suspend [patch]
func (h *UserHandler) Suspend(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req SuspendRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.userService.SetSuspended(c.Request().Context(), middleware.CurrentUser(c), id, *req.Suspended)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body RoleRequest true "Role"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{id}/role [patch]
func (h *UserHandler) SetRole(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req RoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.userService.SetRole(c.Request().Context(), middleware.CurrentUser(c), id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetProfile godoc
// @Summary Public profile by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.userService.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfileByUsername godoc
// @Summary Public profile by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/username/{username} [get]
func (h *UserHandler) GetProfileByUsername(c echo.Context) error {
	profile, err := h.userService.ProfileByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), service.ProfileUpdate{
		Name:     req.Name,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
		Username: req.Username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
