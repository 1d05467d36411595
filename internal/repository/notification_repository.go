package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"dcover/internal/model"
)

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListForUser(ctx context.Context, userID uint, limit uint64) ([]model.NotificationView, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
	reader
}

// NewNotificationRepository builds a GORM-backed repository with sqlx reads.
func NewNotificationRepository(db *gorm.DB, rdb *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db, reader: reader{db: rdb}}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListForUser returns the newest notifications left-joined with the actor and
// the song they refer to.
func (r *notificationRepository) ListForUser(ctx context.Context, userID uint, limit uint64) ([]model.NotificationView, error) {
	q := qb.Select("n.id", "n.user_id", "n.from_user_id", "n.type", "n.song_id", "n.related_id",
		"n.message", "n.is_read", "n.created_at",
		"fu.name AS from_user_name", "fu.username AS from_user_username", "fu.photo_url AS from_user_photo",
		"s.title AS song_title").
		From("notifications n").
		LeftJoin("users fu ON fu.id = n.from_user_id").
		LeftJoin("songs s ON s.id = n.song_id").
		Where(sq.Eq{"n.user_id": userID}).
		OrderBy("n.created_at DESC", "n.id DESC").
		Limit(limit)

	items := []model.NotificationView{}
	if err := r.selectAll(ctx, &items, q); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead is scoped to the recipient; other users' rows are left untouched.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
