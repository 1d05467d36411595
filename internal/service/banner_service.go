package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

// BannerInput is the payload for a new banner.
type BannerInput struct {
	Title       string
	Description *string
	ImageURL    string
	LinkURL     *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

// BannerUpdate is a partial banner update. A date that is Set with a nil
// Time clears that bound.
type BannerUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
	LinkURL     *string
	StartDate   model.OptionalTime
	EndDate     model.OptionalTime
	IsActive    *bool
}

// BannerService handles the admin-curated carousel.
type BannerService interface {
	Active(ctx context.Context) ([]model.Banner, error)
	All(ctx context.Context) ([]model.Banner, error)
	Create(ctx context.Context, admin *model.User, in BannerInput) (*model.Banner, error)
	Update(ctx context.Context, id uint, in BannerUpdate) (*model.Banner, error)
	Toggle(ctx context.Context, id uint) (*model.Banner, error)
	Delete(ctx context.Context, id uint) error
}

type bannerService struct {
	bannerRepo repository.BannerRepository
	now        func() time.Time
}

// NewBannerService creates a new banner service.
func NewBannerService(bannerRepo repository.BannerRepository) BannerService {
	return &bannerService{bannerRepo: bannerRepo, now: time.Now}
}

// Active returns active banners whose window contains the current time.
func (s *bannerService) Active(ctx context.Context) ([]model.Banner, error) {
	banners, err := s.bannerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return lo.Filter(banners, func(b model.Banner, _ int) bool {
		return b.InWindow(now)
	}), nil
}

func (s *bannerService) All(ctx context.Context) ([]model.Banner, error) {
	return s.bannerRepo.ListAll(ctx)
}

func (s *bannerService) Create(ctx context.Context, admin *model.User, in BannerInput) (*model.Banner, error) {
	banner := &model.Banner{
		Title:       strings.TrimSpace(in.Title),
		Description: nullable(trimmed(in.Description)),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		LinkURL:     nullable(trimmed(in.LinkURL)),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    lo.FromPtrOr(in.IsActive, true),
		CreatedBy:   admin.ID,
	}
	if banner.Title == "" || banner.ImageURL == "" {
		return nil, apperrors.Validation("Title and image URL are required")
	}
	if err := checkWindow(banner.StartDate, banner.EndDate); err != nil {
		return nil, err
	}

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return banner, nil
}

func (s *bannerService) Update(ctx context.Context, id uint, in BannerUpdate) (*model.Banner, error) {
	banner, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Banner not found")
	}

	fields := map[string]any{}
	if title := trimmed(in.Title); title != nil {
		if *title == "" {
			return nil, apperrors.Validation("Title cannot be empty")
		}
		fields["title"] = *title
	}
	if image := trimmed(in.ImageURL); image != nil {
		if *image == "" {
			return nil, apperrors.Validation("Image URL cannot be empty")
		}
		fields["image_url"] = *image
	}
	if desc := trimmed(in.Description); desc != nil {
		fields["description"] = nullable(desc)
	}
	if link := trimmed(in.LinkURL); link != nil {
		fields["link_url"] = nullable(link)
	}
	start, end := banner.StartDate, banner.EndDate
	if in.StartDate.Set {
		start = in.StartDate.Time
		fields["start_date"] = in.StartDate.Column()
	}
	if in.EndDate.Set {
		end = in.EndDate.Time
		fields["end_date"] = in.EndDate.Column()
	}
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) > 0 {
		if err := s.bannerRepo.Update(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update banner: %w", err)
		}
	}
	return s.bannerRepo.FindByID(ctx, id)
}

func (s *bannerService) Toggle(ctx context.Context, id uint) (*model.Banner, error) {
	banner, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Banner not found")
	}
	if err := s.bannerRepo.Update(ctx, id, map[string]any{"is_active": !banner.IsActive}); err != nil {
		return nil, fmt.Errorf("toggle banner: %w", err)
	}
	banner.IsActive = !banner.IsActive
	return banner, nil
}

func (s *bannerService) Delete(ctx context.Context, id uint) error {
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Banner not found")
	}
	return nil
}

func checkWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.Validation("End date must not be before start date")
	}
	return nil
}
