package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/service"
)

// CommentHandler handles song comments.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest is the payload for a new comment.
type CreateCommentRequest struct {
	SongID  uint   `json:"songId" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
}

// ListComments godoc
// @Summary Comments on a song
// @Tags comments
// @Produce json
// @Param songId path int true "Song ID"
// @Success 200 {array} model.CommentView
// @Router /comments/song/{songId} [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	songID, err := idParam(c, "songId")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListBySong(c.Request().Context(), songID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment godoc
// @Summary Comment on a song
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} model.CommentView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.commentService.Create(c.Request().Context(), middleware.CurrentUser(c), req.SongID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted"})
}
