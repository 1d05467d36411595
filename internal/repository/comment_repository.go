package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"dcover/internal/model"
)

// CommentRepository defines comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uint) (*model.Comment, error)
	FindView(ctx context.Context, id uint) (*model.CommentView, error)
	ListBySong(ctx context.Context, songID uint) ([]model.CommentView, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
	reader
}

// NewCommentRepository builds a GORM-backed repository with sqlx reads.
func NewCommentRepository(db *gorm.DB, rdb *sqlx.DB) CommentRepository {
	return &commentRepository{db: db, reader: reader{db: rdb}}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindView(ctx context.Context, id uint) (*model.CommentView, error) {
	var comment model.CommentView
	if err := r.get(ctx, &comment, commentViewQuery().Where(sq.Eq{"c.id": id})); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListBySong(ctx context.Context, songID uint) ([]model.CommentView, error) {
	q := commentViewQuery().
		Where(sq.Eq{"c.song_id": songID}).
		OrderBy("c.created_at DESC", "c.id DESC")

	comments := []model.CommentView{}
	if err := r.selectAll(ctx, &comments, q); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func commentViewQuery() sq.SelectBuilder {
	return qb.Select("c.id", "c.song_id", "c.user_id", "c.content", "c.created_at",
		"u.name AS user_name", "u.username AS user_username", "u.photo_url AS user_photo").
		From("comments c").
		Join("users u ON u.id = c.user_id")
}
