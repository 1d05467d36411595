package model

import "time"

// Album groups a user's songs.
type Album struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	CoverImage *string   `json:"coverImage" gorm:"type:text"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AlbumView is an album joined with its owner and song count.
type AlbumView struct {
	ID            uint      `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	CoverImage    *string   `db:"cover_image" json:"coverImage"`
	UserID        uint      `db:"user_id" json:"userId"`
	OwnerName     string    `db:"owner_name" json:"ownerName"`
	OwnerUsername *string   `db:"owner_username" json:"ownerUsername"`
	SongCount     int64     `db:"song_count" json:"songCount"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
