package repository

import (
	"context"

	"gorm.io/gorm"

	"dcover/internal/model"
)

// BannerRepository defines banner persistence operations.
type BannerRepository interface {
	Create(ctx context.Context, banner *model.Banner) error
	FindByID(ctx context.Context, id uint) (*model.Banner, error)
	ListActive(ctx context.Context) ([]model.Banner, error)
	ListAll(ctx context.Context) ([]model.Banner, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository builds a GORM-backed repository.
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *bannerRepository) FindByID(ctx context.Context, id uint) (*model.Banner, error) {
	var banner model.Banner
	if err := r.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

// ListActive returns banners flagged active. The date window is applied by
// the caller.
func (r *bannerRepository) ListActive(ctx context.Context) ([]model.Banner, error) {
	banners := []model.Banner{}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").Order("id DESC").
		Find(&banners).Error
	return banners, err
}

func (r *bannerRepository) ListAll(ctx context.Context) ([]model.Banner, error) {
	banners := []model.Banner{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&banners).Error
	return banners, err
}

func (r *bannerRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return updateByID(ctx, r.db, &model.Banner{}, id, fields)
}

func (r *bannerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Banner{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
