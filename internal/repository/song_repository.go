package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"dcover/internal/model"
)

// SongRepository defines song, like and play persistence.
type SongRepository interface {
	Create(ctx context.Context, song *model.Song) error
	FindByID(ctx context.Context, id uint) (*model.Song, error)
	FindView(ctx context.Context, id uint) (*model.SongView, error)
	ListPublic(ctx context.Context) ([]model.SongView, error)
	ListByUser(ctx context.Context, userID uint, includePrivate bool) ([]model.SongView, error)
	ListByAlbum(ctx context.Context, albumID uint, includePrivate bool) ([]model.SongView, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	ToggleLike(ctx context.Context, songID, userID uint) (liked bool, likes int, err error)
	HasLiked(ctx context.Context, songID, userID uint) (bool, error)
	IncrementPlays(ctx context.Context, id uint) (int, error)
	Delete(ctx context.Context, id uint) error
}

type songRepository struct {
	db *gorm.DB
	reader
}

// NewSongRepository builds a GORM-backed repository with sqlx reads.
func NewSongRepository(db *gorm.DB, rdb *sqlx.DB) SongRepository {
	return &songRepository{db: db, reader: reader{db: rdb}}
}

func (r *songRepository) Create(ctx context.Context, song *model.Song) error {
	return r.db.WithContext(ctx).Create(song).Error
}

func (r *songRepository) FindByID(ctx context.Context, id uint) (*model.Song, error) {
	var song model.Song
	if err := r.db.WithContext(ctx).First(&song, id).Error; err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *songRepository) FindView(ctx context.Context, id uint) (*model.SongView, error) {
	var song model.SongView
	if err := r.get(ctx, &song, songViewQuery().Where(sq.Eq{"s.id": id})); err != nil {
		return nil, err
	}
	return &song, nil
}

// ListPublic returns the feed. Songs with a NULL is_public count as public.
func (r *songRepository) ListPublic(ctx context.Context) ([]model.SongView, error) {
	return r.list(ctx, publicOnly())
}

func (r *songRepository) ListByUser(ctx context.Context, userID uint, includePrivate bool) ([]model.SongView, error) {
	cond := sq.And{sq.Eq{"s.user_id": userID}}
	if !includePrivate {
		cond = append(cond, publicOnly())
	}
	return r.list(ctx, cond)
}

func (r *songRepository) ListByAlbum(ctx context.Context, albumID uint, includePrivate bool) ([]model.SongView, error) {
	cond := sq.And{sq.Eq{"s.album_id": albumID}}
	if !includePrivate {
		cond = append(cond, publicOnly())
	}
	return r.list(ctx, cond)
}

func (r *songRepository) list(ctx context.Context, where sq.Sqlizer) ([]model.SongView, error) {
	q := songViewQuery().Where(where).OrderBy("s.created_at DESC", "s.id DESC")
	songs := []model.SongView{}
	if err := r.selectAll(ctx, &songs, q); err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *songRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return updateByID(ctx, r.db, &model.Song{}, id, fields)
}

// ToggleLike removes the caller's like if present and adds it otherwise. The
// join row and the counter change in one transaction.
func (r *songRepository) ToggleLike(ctx context.Context, songID, userID uint) (bool, int, error) {
	var (
		liked bool
		likes int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("song_id = ? AND user_id = ?", songID, userID).Delete(&model.SongLike{})
		if res.Error != nil {
			return res.Error
		}

		counter := gorm.Expr("likes + 1")
		if res.RowsAffected > 0 {
			counter = gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")
		} else {
			if err := tx.Create(&model.SongLike{SongID: songID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
		}

		if err := tx.Model(&model.Song{}).Where("id = ?", songID).Update("likes", counter).Error; err != nil {
			return err
		}

		var song model.Song
		if err := tx.Select("likes").First(&song, songID).Error; err != nil {
			return err
		}
		likes = song.Likes
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, likes, nil
}

func (r *songRepository) HasLiked(ctx context.Context, songID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SongLike{}).
		Where("song_id = ? AND user_id = ?", songID, userID).
		Count(&count).Error
	return count > 0, err
}

// IncrementPlays bumps the counter and returns the new value.
func (r *songRepository) IncrementPlays(ctx context.Context, id uint) (int, error) {
	res := r.db.WithContext(ctx).Model(&model.Song{}).Where("id = ?", id).Update("plays", gorm.Expr("plays + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var song model.Song
	if err := r.db.WithContext(ctx).Select("plays").First(&song, id).Error; err != nil {
		return 0, err
	}
	return song.Plays, nil
}

// Delete removes the song's likes, then its comments, then the song.
func (r *songRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("song_id = ?", id).Delete(&model.SongLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("song_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Song{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func publicOnly() sq.Sqlizer {
	return sq.Or{sq.Eq{"s.is_public": nil}, sq.Eq{"s.is_public": true}}
}

func songViewQuery() sq.SelectBuilder {
	return qb.Select("s.id", "s.title", "s.original_artist", "s.audio_file", "s.cover_image", "s.album_id",
		"a.title AS album_title", "a.cover_image AS album_cover",
		"s.user_id", "u.name AS uploader_name", "u.username AS uploader_username", "u.photo_url AS uploader_photo",
		"s.likes", "s.plays", "s.lyrics", "s.is_public", "s.created_at").
		From("songs s").
		Join("users u ON u.id = s.user_id").
		LeftJoin("albums a ON a.id = s.album_id")
}
