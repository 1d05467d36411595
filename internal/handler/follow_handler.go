package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/service"
)

// FollowHandler handles the follow graph.
type FollowHandler struct {
	followService service.FollowService
}

// NewFollowHandler creates a new follow handler.
func NewFollowHandler(followService service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow godoc
// @Summary Follow a user
// @Tags follows
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /follows/{id} [post]
func (h *FollowHandler) Follow(c echo.Context) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.followService.Follow(c.Request().Context(), middleware.CurrentUser(c), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Followed"})
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags follows
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /follows/{id} [delete]
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.followService.Unfollow(c.Request().Context(), middleware.CurrentUser(c), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed"})
}

// Status godoc
// @Summary Whether the caller follows a user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]bool
// @Router /follows/check/{id} [get]
func (h *FollowHandler) Status(c echo.Context) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	following, err := h.followService.IsFollowing(c.Request().Context(), middleware.CurrentUser(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"isFollowing": following})
}

// Followers godoc
// @Summary Followers of a user
// @Tags follows
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.UserSummary
// @Router /follows/followers/{id} [get]
func (h *FollowHandler) Followers(c echo.Context) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.followService.Followers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Following godoc
// @Summary Users a user follows
// @Tags follows
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.UserSummary
// @Router /follows/following/{id} [get]
func (h *FollowHandler) Following(c echo.Context) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.followService.Following(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
