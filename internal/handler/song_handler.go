package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/model"
	"dcover/internal/service"
)

// SongHandler handles song, like and play endpoints.
type SongHandler struct {
	songService service.SongService
}

// NewSongHandler creates a new song handler.
func NewSongHandler(songService service.SongService) *SongHandler {
	return &SongHandler{songService: songService}
}

// CreateSongRequest is the payload for a new song.
type CreateSongRequest struct {
	Title          string  `json:"title" validate:"required,max=255"`
	OriginalArtist string  `json:"originalArtist" validate:"required,max=255"`
	AudioFile      string  `json:"audioFile" validate:"required"`
	CoverImage     *string `json:"coverImage"`
	AlbumID        *uint   `json:"albumId"`
	Lyrics         *string `json:"lyrics"`
	IsPublic       *bool   `json:"isPublic"`
}

// UpdateSongRequest is a partial song update; albumId null unassigns.
type UpdateSongRequest struct {
	Title          *string          `json:"title" validate:"omitempty,max=255"`
	OriginalArtist *string          `json:"originalArtist" validate:"omitempty,max=255"`
	CoverImage     *string          `json:"coverImage"`
	Lyrics         *string          `json:"lyrics"`
	IsPublic       *bool            `json:"isPublic"`
	AlbumID        model.OptionalID `json:"albumId" swaggertype:"integer"`
}

// VisibilityRequest sets visibility explicitly; an empty body toggles it.
type VisibilityRequest struct {
	IsPublic *bool `json:"isPublic"`
}

// ListSongs godoc
// @Summary Public feed
// @Tags songs
// @Produce json
// @Success 200 {array} model.SongView
// @Router /songs [get]
func (h *SongHandler) ListSongs(c echo.Context) error {
	songs, err := h.songService.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, songs)
}

// GetSong godoc
// @Summary Get song by id
// @Tags songs
// @Produce json
// @Param id path int true "Song ID"
// @Success 200 {object} model.SongView
// @Failure 404 {object} errors.ErrorResponse
// @Router /songs/{id} [get]
func (h *SongHandler) GetSong(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	song, err := h.songService.Get(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, song)
}

// ListUserSongs godoc
// @Summary Songs of a user
// @Description Private songs are included only for the user themselves.
// @Tags songs
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} model.SongView
// @Router /songs/user/{userId} [get]
func (h *SongHandler) ListUserSongs(c echo.Context) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	songs, err := h.songService.ListByUser(c.Request().Context(), middleware.CurrentUser(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, songs)
}

// ListAlbumSongs godoc
// @Summary Songs of an album
// @Tags songs
// @Produce json
// @Param albumId path int true "Album ID"
// @Success 200 {array} model.SongView
// @Failure 404 {object} errors.ErrorResponse
// @Router /songs/album/{albumId} [get]
func (h *SongHandler) ListAlbumSongs(c echo.Context) error {
	albumID, err := idParam(c, "albumId")
	if err != nil {
		return err
	}
	songs, err := h.songService.ListByAlbum(c.Request().Context(), middleware.CurrentUser(c), albumID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, songs)
}

// CreateSong godoc
// @Summary Create song
// @Tags songs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSongRequest true "Song"
// @Success 201 {object} model.SongView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /songs [post]
func (h *SongHandler) CreateSong(c echo.Context) error {
	var req CreateSongRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	song, err := h.songService.Create(c.Request().Context(), middleware.CurrentUser(c), service.SongInput{
		Title:          req.Title,
		OriginalArtist: req.OriginalArtist,
		AudioFile:      req.AudioFile,
		CoverImage:     req.CoverImage,
		AlbumID:        req.AlbumID,
		Lyrics:         req.Lyrics,
		IsPublic:       req.IsPublic,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, song)
}

// UpdateSong godoc
// @Summary Update song
// @Tags songs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Song ID"
// @Param request body UpdateSongRequest true "Fields to change"
// @Success 200 {object} model.SongView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /songs/{id} [patch]
func (h *SongHandler) UpdateSong(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateSongRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	song, err := h.songService.Update(c.Request().Context(), middleware.CurrentUser(c), id, service.SongUpdate{
		Title:          req.Title,
		OriginalArtist: req.OriginalArtist,
		CoverImage:     req.CoverImage,
		Lyrics:         req.Lyrics,
		IsPublic:       req.IsPublic,
		AlbumID:        req.AlbumID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, song)
}

// SetVisibility godoc
// @Summary Set or toggle song visibility
// @Tags songs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Song ID"
// @Param request body VisibilityRequest false "Visibility"
// @Success 200 {object} model.SongView
// @Failure 403 {object} errors.ErrorResponse
// @Router /songs/{id}/visibility [patch]
func (h *SongHandler) SetVisibility(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req VisibilityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	song, err := h.songService.SetVisibility(c.Request().Context(), middleware.CurrentUser(c), id, req.IsPublic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, song)
}

// ToggleLike godoc
// @Summary Like or unlike a song
// @Tags songs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Song ID"
// @Success 200 {object} service.LikeResult
// @Failure 404 {object} errors.ErrorResponse
// @Router /songs/{id}/like [post]
func (h *SongHandler) ToggleLike(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.songService.ToggleLike(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// LikeStatus godoc
// @Summary Whether the caller likes a song
// @Tags songs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Song ID"
// @Success 200 {object} map[string]bool
// @Router /songs/{id}/like [get]
func (h *SongHandler) LikeStatus(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	liked, err := h.songService.IsLiked(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// Play godoc
// @Summary Count a play
// @Tags songs
// @Produce json
// @Param id path int true "Song ID"
// @Success 200 {object} map[string]int
// @Failure 404 {object} errors.ErrorResponse
// @Router /songs/{id}/play [post]
func (h *SongHandler) Play(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	plays, err := h.songService.Play(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"plays": plays})
}

// DeleteSong godoc
// @Summary Delete song
// @Tags songs
// @Security BearerAuth
// @Param id path int true "Song ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /songs/{id} [delete]
func (h *SongHandler) DeleteSong(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.songService.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Song deleted"})
}
