package model

import "time"

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account created on first Google sign-in.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GoogleID  string    `json:"googleId" gorm:"size:128;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Username  *string   `json:"username" gorm:"size:64;uniqueIndex"`
	PhotoURL  *string   `json:"photoUrl" gorm:"type:text"`
	Bio       *string   `json:"bio" gorm:"type:text"`
	Role      string    `json:"role" gorm:"size:20;not null;default:'user'"`
	Suspended bool      `json:"suspended" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanView reports whether u may read private rows owned by ownerID.
func (u *User) CanView(ownerID uint) bool {
	return u != nil && (u.ID == ownerID || u.IsAdmin())
}

// CanModify reports whether u may mutate a row owned by owner. Admins
// override ownership except against other admins. A nil owner means the
// owner account is gone.
func (u *User) CanModify(owner *User) bool {
	if u == nil {
		return false
	}
	if owner == nil {
		return u.IsAdmin()
	}
	return u.ID == owner.ID || (u.IsAdmin() && !owner.IsAdmin())
}

// UserRef is the compact identity embedded in other resources.
type UserRef struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Username *string `json:"username"`
	PhotoURL *string `json:"photoUrl"`
}

// Ref returns the compact identity of u.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Username: u.Username, PhotoURL: u.PhotoURL}
}

// UserSummary is a user row ranked for discovery lists (followers,
// suggestions, search).
type UserSummary struct {
	ID            uint      `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Username      *string   `db:"username" json:"username"`
	PhotoURL      *string   `db:"photo_url" json:"photoUrl"`
	Bio           *string   `db:"bio" json:"bio"`
	SongCount     int64     `db:"song_count" json:"songCount"`
	FollowerCount int64     `db:"follower_count" json:"followerCount"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// AdminUserView is the admin listing row.
type AdminUserView struct {
	ID        uint      `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Username  *string   `db:"username" json:"username"`
	PhotoURL  *string   `db:"photo_url" json:"photoUrl"`
	Role      string    `db:"role" json:"role"`
	Suspended bool      `db:"suspended" json:"suspended"`
	SongCount int64     `db:"song_count" json:"songCount"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Profile is the public profile with derived counters.
type Profile struct {
	ID             uint      `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Username       *string   `db:"username" json:"username"`
	PhotoURL       *string   `db:"photo_url" json:"photoUrl"`
	Bio            *string   `db:"bio" json:"bio"`
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	SongCount      int64     `db:"song_count" json:"songCount"`
	AlbumCount     int64     `db:"album_count" json:"albumCount"`
	TotalLikes     int64     `db:"total_likes" json:"totalLikes"`
	FollowerCount  int64     `db:"follower_count" json:"followerCount"`
	FollowingCount int64     `db:"following_count" json:"followingCount"`
}
