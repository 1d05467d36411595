package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

// AlbumUpdate is a partial album update.
type AlbumUpdate struct {
	Title      *string
	CoverImage *string
}

// AlbumService handles album operations.
type AlbumService interface {
	List(ctx context.Context) ([]model.AlbumView, error)
	ListByUser(ctx context.Context, userID uint) ([]model.AlbumView, error)
	Get(ctx context.Context, id uint) (*model.AlbumView, error)
	Create(ctx context.Context, user *model.User, title string, coverImage *string) (*model.AlbumView, error)
	Update(ctx context.Context, user *model.User, id uint, in AlbumUpdate) (*model.AlbumView, error)
	SetCover(ctx context.Context, user *model.User, id uint, coverImage string) (*model.AlbumView, error)
	Delete(ctx context.Context, user *model.User, id uint) error
}

type albumService struct {
	albumRepo repository.AlbumRepository
	ownership ownership
}

// NewAlbumService creates a new album service.
func NewAlbumService(albumRepo repository.AlbumRepository, userRepo repository.UserRepository) AlbumService {
	return &albumService{albumRepo: albumRepo, ownership: ownership{users: userRepo}}
}

func (s *albumService) List(ctx context.Context) ([]model.AlbumView, error) {
	return s.albumRepo.List(ctx)
}

func (s *albumService) ListByUser(ctx context.Context, userID uint) ([]model.AlbumView, error) {
	return s.albumRepo.ListByUser(ctx, userID)
}

func (s *albumService) Get(ctx context.Context, id uint) (*model.AlbumView, error) {
	album, err := s.albumRepo.FindView(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Album not found")
	}
	return album, nil
}

func (s *albumService) Create(ctx context.Context, user *model.User, title string, coverImage *string) (*model.AlbumView, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.Validation("Title is required")
	}

	album := &model.Album{
		Title:      title,
		CoverImage: nullable(trimmed(coverImage)),
		UserID:     user.ID,
	}
	if err := s.albumRepo.Create(ctx, album); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	return s.albumRepo.FindView(ctx, album.ID)
}

func (s *albumService) Update(ctx context.Context, user *model.User, id uint, in AlbumUpdate) (*model.AlbumView, error) {
	if _, err := s.owned(ctx, user, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if title := trimmed(in.Title); title != nil {
		if *title == "" {
			return nil, apperrors.Validation("Title cannot be empty")
		}
		fields["title"] = *title
	}
	if cover := trimmed(in.CoverImage); cover != nil {
		fields["cover_image"] = nullable(cover)
	}

	if len(fields) > 0 {
		if err := s.albumRepo.Update(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update album: %w", err)
		}
	}
	return s.albumRepo.FindView(ctx, id)
}

func (s *albumService) SetCover(ctx context.Context, user *model.User, id uint, coverImage string) (*model.AlbumView, error) {
	return s.Update(ctx, user, id, AlbumUpdate{CoverImage: &coverImage})
}

// Delete refuses while songs still reference the album.
func (s *albumService) Delete(ctx context.Context, user *model.User, id uint) error {
	if _, err := s.owned(ctx, user, id); err != nil {
		return err
	}

	count, err := s.albumRepo.CountSongs(ctx, id)
	if err != nil {
		return fmt.Errorf("count album songs: %w", err)
	}
	if count > 0 {
		return apperrors.Validation("Cannot delete an album that still has songs")
	}
	if err := s.albumRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Album not found")
	}
	return nil
}

func (s *albumService) owned(ctx context.Context, user *model.User, id uint) (*model.Album, error) {
	album, err := s.albumRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Album not found")
	}
	if err := s.ownership.check(ctx, user, album.UserID, "You can only modify your own albums"); err != nil {
		return nil, err
	}
	return album, nil
}
