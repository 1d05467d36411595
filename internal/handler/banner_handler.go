package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dcover/internal/middleware"
	"dcover/internal/model"
	"dcover/internal/service"
)

// BannerHandler handles the homepage carousel.
type BannerHandler struct {
	bannerService service.BannerService
}

// NewBannerHandler creates a new banner handler.
func NewBannerHandler(bannerService service.BannerService) *BannerHandler {
	return &BannerHandler{bannerService: bannerService}
}

// CreateBannerRequest is the payload for a new banner. Dates are RFC 3339.
type CreateBannerRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description"`
	ImageURL    string     `json:"imageUrl" validate:"required"`
	LinkURL     *string    `json:"linkUrl"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    *bool      `json:"isActive"`
}

// UpdateBannerRequest is a partial banner update. A null date clears it.
type UpdateBannerRequest struct {
	Title       *string            `json:"title" validate:"omitempty,max=255"`
	Description *string            `json:"description"`
	ImageURL    *string            `json:"imageUrl"`
	LinkURL     *string            `json:"linkUrl"`
	StartDate   model.OptionalTime `json:"startDate" swaggertype:"string" format:"date-time"`
	EndDate     model.OptionalTime `json:"endDate" swaggertype:"string" format:"date-time"`
	IsActive    *bool              `json:"isActive"`
}

// ListActive godoc
// @Summary Banners currently shown
// @Tags banners
// @Produce json
// @Success 200 {array} model.Banner
// @Router /banners [get]
func (h *BannerHandler) ListActive(c echo.Context) error {
	banners, err := h.bannerService.Active(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banners)
}

// ListAll godoc
// @Summary All banners
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Banner
// @Failure 403 {object} errors.ErrorResponse
// @Router /banners/all [get]
func (h *BannerHandler) ListAll(c echo.Context) error {
	banners, err := h.bannerService.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banners)
}

// CreateBanner godoc
// @Summary Create banner
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBannerRequest true "Banner"
// @Success 201 {object} model.Banner
// @Failure 400 {object} errors.ErrorResponse
// @Router /banners [post]
func (h *BannerHandler) CreateBanner(c echo.Context) error {
	var req CreateBannerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	banner, err := h.bannerService.Create(c.Request().Context(), middleware.CurrentUser(c), service.BannerInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, banner)
}

// UpdateBanner godoc
// @Summary Update banner
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Param request body UpdateBannerRequest true "Fields to change"
// @Success 200 {object} model.Banner
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /banners/{id} [patch]
func (h *BannerHandler) UpdateBanner(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateBannerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	banner, err := h.bannerService.Update(c.Request().Context(), id, service.BannerUpdate{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banner)
}

// ToggleBanner godoc
// @Summary Flip a banner's active flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Success 200 {object} model.Banner
// @Failure 404 {object} errors.ErrorResponse
// @Router /banners/{id}/toggle [patch]
func (h *BannerHandler) ToggleBanner(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	banner, err := h.bannerService.Toggle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, banner)
}

// DeleteBanner godoc
// @Summary Delete banner
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /banners/{id} [delete]
func (h *BannerHandler) DeleteBanner(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.bannerService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Banner deleted"})
}
