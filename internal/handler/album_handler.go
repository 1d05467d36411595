package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/service"
)

// AlbumHandler handles album endpoints.
type AlbumHandler struct {
	albumService service.AlbumService
}

// NewAlbumHandler creates a new album handler.
func NewAlbumHandler(albumService service.AlbumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

// CreateAlbumRequest is the payload for a new album.
type CreateAlbumRequest struct {
	Title      string  `json:"title" validate:"required,max=255"`
	CoverImage *string `json:"coverImage"`
}

// UpdateAlbumRequest is a partial album update.
type UpdateAlbumRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	CoverImage *string `json:"coverImage"`
}

// AlbumCoverRequest replaces the album cover.
type AlbumCoverRequest struct {
	CoverImage string `json:"coverImage" validate:"required"`
}

// ListAlbums godoc
// @Summary List albums
// @Tags albums
// @Produce json
// @Success 200 {array} model.AlbumView
// @Router /albums [get]
func (h *AlbumHandler) ListAlbums(c echo.Context) error {
	albums, err := h.albumService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, albums)
}

// ListUserAlbums godoc
// @Summary Albums of a user
// @Tags albums
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} model.AlbumView
// @Router /albums/user/{userId} [get]
func (h *AlbumHandler) ListUserAlbums(c echo.Context) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	albums, err := h.albumService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, albums)
}

// GetAlbum godoc
// @Summary Get album by id
// @Tags albums
// @Produce json
// @Param id path int true "Album ID"
// @Success 200 {object} model.AlbumView
// @Failure 404 {object} errors.ErrorResponse
// @Router /albums/{id} [get]
func (h *AlbumHandler) GetAlbum(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	album, err := h.albumService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, album)
}

// CreateAlbum godoc
// @Summary Create album
// @Tags albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAlbumRequest true "Album"
// @Success 201 {object} model.AlbumView
// @Failure 400 {object} errors.ErrorResponse
// @Router /albums [post]
func (h *AlbumHandler) CreateAlbum(c echo.Context) error {
	var req CreateAlbumRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	album, err := h.albumService.Create(c.Request().Context(), middleware.CurrentUser(c), req.Title, req.CoverImage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, album)
}

// UpdateAlbum godoc
// @Summary Update album
// @Tags albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Album ID"
// @Param request body UpdateAlbumRequest true "Fields to change"
// @Success 200 {object} model.AlbumView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /albums/{id} [patch]
func (h *AlbumHandler) UpdateAlbum(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateAlbumRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	album, err := h.albumService.Update(c.Request().Context(), middleware.CurrentUser(c), id, service.AlbumUpdate{
		Title:      req.Title,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, album)
}

// SetCover godoc
// @Summary Replace album cover
// @Tags albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Album ID"
// @Param request body AlbumCoverRequest true "Cover"
// @Success 200 {object} model.AlbumView
// @Failure 403 {object} errors.ErrorResponse
// @Router /albums/{id}/cover [patch]
func (h *AlbumHandler) SetCover(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req AlbumCoverRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	album, err := h.albumService.SetCover(c.Request().Context(), middleware.CurrentUser(c), id, req.CoverImage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, album)
}

// DeleteAlbum godoc
// @Summary Delete an empty album
// @Tags albums
// @Security BearerAuth
// @Param id path int true "Album ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /albums/{id} [delete]
func (h *AlbumHandler) DeleteAlbum(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.albumService.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Album deleted"})
}
