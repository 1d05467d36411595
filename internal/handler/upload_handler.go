package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "dcover/internal/errors"
	"dcover/internal/service"
	"dcover/internal/storage"
)

// UploadHandler accepts media files.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadAudio godoc
// @Summary Upload an audio file
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Audio file"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /upload/audio [post]
func (h *UploadHandler) UploadAudio(c echo.Context) error {
	return h.upload(c, storage.KindAudio)
}

// UploadImage godoc
// @Summary Upload an image
// @Description Decodable images are downscaled to at most 1200px and stored as JPEG.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /upload/image [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	return h.upload(c, storage.KindImage)
}

func (h *UploadHandler) upload(c echo.Context, kind storage.Kind) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.Validation("file is required")
	}
	src, err := header.Open()
	if err != nil {
		return apperrors.Validation("Unreadable upload")
	}
	defer src.Close()

	url, err := h.uploadService.Upload(c.Request().Context(), kind, header.Filename, header.Size, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
