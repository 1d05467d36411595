package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"dcover/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	ListWithSongCount(ctx context.Context) ([]model.AdminUserView, error)
	Suggestions(ctx context.Context, userID uint, limit uint64) ([]model.UserSummary, error)
	Search(ctx context.Context, term string, limit uint64) ([]model.UserSummary, error)
	Profile(ctx context.Context, id uint) (*model.Profile, error)
}

type userRepository struct {
	db *gorm.DB
	reader
}

// NewUserRepository builds a repository writing through GORM and reading
// joined views through sqlx.
func NewUserRepository(db *gorm.DB, rdb *sqlx.DB) UserRepository {
	return &userRepository{db: db, reader: reader{db: rdb}}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return updateByID(ctx, r.db, &model.User{}, id, fields)
}

func (r *userRepository) ListWithSongCount(ctx context.Context) ([]model.AdminUserView, error) {
	q := qb.Select("u.id", "u.email", "u.name", "u.username", "u.photo_url", "u.role", "u.suspended",
		"(SELECT COUNT(*) FROM songs s WHERE s.user_id = u.id) AS song_count", "u.created_at").
		From("users u").
		OrderBy("u.created_at DESC", "u.id DESC")

	users := []model.AdminUserView{}
	if err := r.selectAll(ctx, &users, q); err != nil {
		return nil, err
	}
	return users, nil
}

// Suggestions ranks active users the caller does not follow yet.
func (r *userRepository) Suggestions(ctx context.Context, userID uint, limit uint64) ([]model.UserSummary, error) {
	q := userSummaryQuery().
		From("users u").
		Where(sq.NotEq{"u.id": userID}).
		Where(sq.Eq{"u.suspended": false}).
		Where("u.id NOT IN (SELECT f.following_id FROM follows f WHERE f.follower_id = ?)", userID).
		OrderBy("song_count DESC", "follower_count DESC", "u.id ASC").
		Limit(limit)

	users := []model.UserSummary{}
	if err := r.selectAll(ctx, &users, q); err != nil {
		return nil, err
	}
	return users, nil
}

// Search matches term case-insensitively against name and username.
func (r *userRepository) Search(ctx context.Context, term string, limit uint64) ([]model.UserSummary, error) {
	pattern := likePattern(term)
	q := userSummaryQuery().
		From("users u").
		Where(sq.Eq{"u.suspended": false}).
		Where(sq.Or{
			sq.Expr("LOWER(u.name) LIKE ? ESCAPE '!'", pattern),
			sq.Expr("LOWER(u.username) LIKE ? ESCAPE '!'", pattern),
		}).
		OrderBy("song_count DESC", "follower_count DESC", "u.id ASC").
		Limit(limit)

	users := []model.UserSummary{}
	if err := r.selectAll(ctx, &users, q); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Profile(ctx context.Context, id uint) (*model.Profile, error) {
	q := qb.Select("u.id", "u.name", "u.username", "u.photo_url", "u.bio", "u.role", "u.created_at",
		"(SELECT COUNT(*) FROM songs s WHERE s.user_id = u.id) AS song_count",
		"(SELECT COUNT(*) FROM albums a WHERE a.user_id = u.id) AS album_count",
		"(SELECT COALESCE(SUM(s.likes), 0) FROM songs s WHERE s.user_id = u.id) AS total_likes",
		"(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) AS follower_count",
		"(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id) AS following_count").
		From("users u").
		Where(sq.Eq{"u.id": id})

	var profile model.Profile
	if err := r.get(ctx, &profile, q); err != nil {
		return nil, err
	}
	return &profile, nil
}

// userSummaryQuery selects model.UserSummary columns for alias u.
func userSummaryQuery() sq.SelectBuilder {
	return qb.Select("u.id", "u.name", "u.username", "u.photo_url", "u.bio",
		"(SELECT COUNT(*) FROM songs s WHERE s.user_id = u.id) AS song_count",
		"(SELECT COUNT(*) FROM follows fc WHERE fc.following_id = u.id) AS follower_count",
		"u.created_at")
}
