package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/service"
)

// NotificationHandler serves the caller's notifications.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// @Summary Latest notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.NotificationList
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	list, err := h.notificationService.List(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// UnreadCount godoc
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"unreadCount": count})
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notificationService.MarkRead(c.Request().Context(), id, middleware.CurrentUser(c).ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllRead godoc
// @Summary Mark all notifications read
// @Tags notifications
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notificationService.MarkAllRead(c.Request().Context(), middleware.CurrentUser(c).ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
