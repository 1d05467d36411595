package model

import "time"

// Song is an uploaded cover. Likes and Plays are denormalized counters.
type Song struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"size:255;not null"`
	OriginalArtist string    `json:"originalArtist" gorm:"size:255;not null"`
	AudioFile      string    `json:"audioFile" gorm:"type:text;not null"`
	CoverImage     *string   `json:"coverImage" gorm:"type:text"`
	AlbumID        *uint     `json:"albumId" gorm:"index"`
	UserID         uint      `json:"userId" gorm:"not null;index"`
	Likes          int       `json:"likes" gorm:"not null;default:0"`
	Plays          int       `json:"plays" gorm:"not null;default:0"`
	Lyrics         *string   `json:"lyrics" gorm:"type:text"`
	IsPublic       *bool     `json:"isPublic" gorm:"default:true"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
}

// Visible reports whether the song appears in public listings. Rows written
// before the column existed carry NULL and count as public.
func (s *Song) Visible() bool {
	return s.IsPublic == nil || *s.IsPublic
}

// SongLike records one user's like of one song.
type SongLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SongID    uint      `json:"songId" gorm:"not null;uniqueIndex:idx_song_likes_pair"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_song_likes_pair;index"`
	CreatedAt time.Time `json:"createdAt"`
}

// SongView is a song joined with its uploader and album.
type SongView struct {
	ID               uint      `db:"id" json:"id"`
	Title            string    `db:"title" json:"title"`
	OriginalArtist   string    `db:"original_artist" json:"originalArtist"`
	AudioFile        string    `db:"audio_file" json:"audioFile"`
	CoverImage       *string   `db:"cover_image" json:"coverImage"`
	AlbumID          *uint     `db:"album_id" json:"albumId"`
	AlbumTitle       *string   `db:"album_title" json:"albumTitle"`
	AlbumCover       *string   `db:"album_cover" json:"albumCover"`
	UserID           uint      `db:"user_id" json:"userId"`
	UploaderName     string    `db:"uploader_name" json:"uploaderName"`
	UploaderUsername *string   `db:"uploader_username" json:"uploaderUsername"`
	UploaderPhoto    *string   `db:"uploader_photo" json:"uploaderPhoto"`
	Likes            int       `db:"likes" json:"likes"`
	Plays            int       `db:"plays" json:"plays"`
	Lyrics           *string   `db:"lyrics" json:"lyrics"`
	IsPublic         *bool     `db:"is_public" json:"isPublic"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// Visible mirrors Song.Visible for joined rows.
func (s *SongView) Visible() bool {
	return s.IsPublic == nil || *s.IsPublic
}
