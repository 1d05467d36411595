package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"dcover/internal/model"
)

// AlbumRepository defines album persistence operations.
type AlbumRepository interface {
	Create(ctx context.Context, album *model.Album) error
	FindByID(ctx context.Context, id uint) (*model.Album, error)
	FindView(ctx context.Context, id uint) (*model.AlbumView, error)
	List(ctx context.Context) ([]model.AlbumView, error)
	ListByUser(ctx context.Context, userID uint) ([]model.AlbumView, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	CountSongs(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type albumRepository struct {
	db *gorm.DB
	reader
}

// NewAlbumRepository builds a GORM-backed repository with sqlx reads.
func NewAlbumRepository(db *gorm.DB, rdb *sqlx.DB) AlbumRepository {
	return &albumRepository{db: db, reader: reader{db: rdb}}
}

func (r *albumRepository) Create(ctx context.Context, album *model.Album) error {
	return r.db.WithContext(ctx).Create(album).Error
}

func (r *albumRepository) FindByID(ctx context.Context, id uint) (*model.Album, error) {
	var album model.Album
	if err := r.db.WithContext(ctx).First(&album, id).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) FindView(ctx context.Context, id uint) (*model.AlbumView, error) {
	var album model.AlbumView
	if err := r.get(ctx, &album, albumViewQuery().Where(sq.Eq{"a.id": id})); err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) List(ctx context.Context) ([]model.AlbumView, error) {
	return r.list(ctx, albumViewQuery())
}

func (r *albumRepository) ListByUser(ctx context.Context, userID uint) ([]model.AlbumView, error) {
	return r.list(ctx, albumViewQuery().Where(sq.Eq{"a.user_id": userID}))
}

func (r *albumRepository) list(ctx context.Context, q sq.SelectBuilder) ([]model.AlbumView, error) {
	albums := []model.AlbumView{}
	if err := r.selectAll(ctx, &albums, q.OrderBy("a.created_at DESC", "a.id DESC")); err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *albumRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return updateByID(ctx, r.db, &model.Album{}, id, fields)
}

func (r *albumRepository) CountSongs(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Song{}).Where("album_id = ?", id).Count(&count).Error
	return count, err
}

func (r *albumRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Album{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func albumViewQuery() sq.SelectBuilder {
	return qb.Select("a.id", "a.title", "a.cover_image", "a.user_id",
		"u.name AS owner_name", "u.username AS owner_username",
		"(SELECT COUNT(*) FROM songs s WHERE s.album_id = a.id) AS song_count",
		"a.created_at").
		From("albums a").
		Join("users u ON u.id = a.user_id")
}
