package model

import "time"

// Notification types.
const (
	NotificationComment = "comment"
	NotificationMessage = "message"
	NotificationLike    = "like"
	NotificationFollow  = "follow"
)

// Notification is addressed to UserID, optionally caused by FromUserID.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	FromUserID *uint     `json:"fromUserId"`
	Type       string    `json:"type" gorm:"size:20;not null"`
	SongID     *uint     `json:"songId"`
	RelatedID  *uint     `json:"relatedId"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	IsRead     bool      `json:"isRead" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}

// NotificationView is a notification left-joined with its actor and song.
type NotificationView struct {
	ID               uint      `db:"id" json:"id"`
	UserID           uint      `db:"user_id" json:"userId"`
	FromUserID       *uint     `db:"from_user_id" json:"fromUserId"`
	Type             string    `db:"type" json:"type"`
	SongID           *uint     `db:"song_id" json:"songId"`
	RelatedID        *uint     `db:"related_id" json:"relatedId"`
	Message          string    `db:"message" json:"message"`
	IsRead           bool      `db:"is_read" json:"isRead"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	FromUserName     *string   `db:"from_user_name" json:"fromUserName"`
	FromUserUsername *string   `db:"from_user_username" json:"fromUserUsername"`
	FromUserPhoto    *string   `db:"from_user_photo" json:"fromUserPhoto"`
	SongTitle        *string   `db:"song_title" json:"songTitle"`
}
