package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"dcover/internal/model"
)

// FollowRepository defines follow relationship persistence.
type FollowRepository interface {
	Create(ctx context.Context, follow *model.Follow) error
	Delete(ctx context.Context, followerID, followingID uint) error
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]model.UserSummary, error)
	Following(ctx context.Context, userID uint) ([]model.UserSummary, error)
}

type followRepository struct {
	db *gorm.DB
	reader
}

// NewFollowRepository builds a GORM-backed repository with sqlx reads.
func NewFollowRepository(db *gorm.DB, rdb *sqlx.DB) FollowRepository {
	return &followRepository{db: db, reader: reader{db: rdb}}
}

func (r *followRepository) Create(ctx context.Context, follow *model.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Followers lists users following userID, newest relationship first.
func (r *followRepository) Followers(ctx context.Context, userID uint) ([]model.UserSummary, error) {
	q := userSummaryQuery().
		From("follows f").
		Join("users u ON u.id = f.follower_id").
		Where(sq.Eq{"f.following_id": userID}).
		OrderBy("f.created_at DESC", "f.id DESC")
	return r.summaries(ctx, q)
}

// Following lists users userID follows, newest relationship first.
func (r *followRepository) Following(ctx context.Context, userID uint) ([]model.UserSummary, error) {
	q := userSummaryQuery().
		From("follows f").
		Join("users u ON u.id = f.following_id").
		Where(sq.Eq{"f.follower_id": userID}).
		OrderBy("f.created_at DESC", "f.id DESC")
	return r.summaries(ctx, q)
}

func (r *followRepository) summaries(ctx context.Context, q sq.SelectBuilder) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	if err := r.selectAll(ctx, &users, q); err != nil {
		return nil, err
	}
	return users, nil
}
