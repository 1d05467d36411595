package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
)

func TestBannerService_ActiveFiltersWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	banners := new(MockBannerRepository)
	banners.On("ListActive", ctx).Return([]model.Banner{
		{ID: 1},
		{ID: 2, StartDate: &yesterday, EndDate: &tomorrow},
		{ID: 3, StartDate: &tomorrow},
		{ID: 4, StartDate: &past, EndDate: &yesterday},
		{ID: 5, EndDate: &tomorrow},
	}, nil)

	svc := &bannerService{bannerRepo: banners, now: func() time.Time { return now }}
	got, err := svc.Active(ctx)
	require.NoError(t, err)

	ids := make([]uint, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []uint{1, 2, 5}, ids)
}

func TestBannerService_Create(t *testing.T) {
	ctx := context.Background()
	admin := &model.User{ID: 1, Role: model.RoleAdmin}

	_, err := NewBannerService(new(MockBannerRepository)).Create(ctx, admin, BannerInput{Title: "Promo"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err = NewBannerService(new(MockBannerRepository)).Create(ctx, admin, BannerInput{Title: "Promo", ImageURL: "x", StartDate: &start, EndDate: &end})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	banners := new(MockBannerRepository)
	banners.On("Create", ctx, mock.MatchedBy(func(b *model.Banner) bool {
		return b.IsActive && b.CreatedBy == 1 && b.Description == nil
	})).Return(nil)
	got, err := NewBannerService(banners).Create(ctx, admin, BannerInput{Title: "Promo", ImageURL: "https://img/p.jpg", Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Promo", got.Title)
}

func TestBannerService_Toggle(t *testing.T) {
	ctx := context.Background()
	banners := new(MockBannerRepository)
	banners.On("FindByID", ctx, uint(1)).Return(&model.Banner{ID: 1, IsActive: true}, nil)
	banners.On("Update", ctx, uint(1), map[string]any{"is_active": false}).Return(nil)

	got, err := NewBannerService(banners).Toggle(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestBannerService_UpdateClearsWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	banners := new(MockBannerRepository)
	banners.On("FindByID", ctx, uint(4)).Return(&model.Banner{ID: 4, StartDate: &start, EndDate: &end}, nil).Once()
	banners.On("Update", ctx, uint(4), map[string]any{"end_date": nil}).Return(nil)
	banners.On("FindByID", ctx, uint(4)).Return(&model.Banner{ID: 4, StartDate: &start}, nil).Once()

	got, err := NewBannerService(banners).Update(ctx, 4, BannerUpdate{EndDate: model.OptionalTime{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
	banners.AssertExpectations(t)
}

func TestBannerService_UpdateChecksMergedWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	banners := new(MockBannerRepository)
	banners.On("FindByID", ctx, uint(4)).Return(&model.Banner{ID: 4, StartDate: &start}, nil)

	_, err := NewBannerService(banners).Update(ctx, 4, BannerUpdate{EndDate: model.OptionalTime{Set: true, Time: &before}})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	banners.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
