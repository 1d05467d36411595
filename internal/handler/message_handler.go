package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/service"
)

// MessageHandler handles direct messages.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest is a direct message to another user.
type SendMessageRequest struct {
	RecipientID uint   `json:"recipientId" validate:"required"`
	Content     string `json:"content" validate:"required,max=5000"`
}

// Send godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.messageService.Send(c.Request().Context(), middleware.CurrentUser(c), req.RecipientID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Conversations godoc
// @Summary Caller's conversations
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ConversationSummary
// @Router /messages/conversations [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	convs, err := h.messageService.Conversations(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, convs)
}

// Thread godoc
// @Summary Open a conversation
// @Description Returns messages oldest first and marks the other participant's messages read.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 200 {object} service.Thread
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages/conversations/{id} [get]
func (h *MessageHandler) Thread(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	thread, err := h.messageService.Thread(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, thread)
}

// With godoc
// @Summary Existing conversation with a user
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]model.Conversation
// @Router /messages/with/{userId} [get]
func (h *MessageHandler) With(c echo.Context) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	conv, err := h.messageService.ConversationWith(c.Request().Context(), middleware.CurrentUser(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"conversation": conv})
}

// UnreadCount godoc
// @Summary Unread message count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router /messages/unread-count [get]
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	count, err := h.messageService.UnreadCount(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"unreadCount": count})
}
