package model

import "time"

// Comment is a user's remark on a song.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SongID    uint      `json:"songId" gorm:"not null;index"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentView is a comment joined with its author.
type CommentView struct {
	ID           uint      `db:"id" json:"id"`
	SongID       uint      `db:"song_id" json:"songId"`
	UserID       uint      `db:"user_id" json:"userId"`
	Content      string    `db:"content" json:"content"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UserName     string    `db:"user_name" json:"userName"`
	UserUsername *string   `db:"user_username" json:"userUsername"`
	UserPhoto    *string   `db:"user_photo" json:"userPhoto"`
}
