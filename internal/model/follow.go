package model

import "time"

// Follow is a directed follower -> following relationship.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"followerId" gorm:"not null;uniqueIndex:idx_follows_pair"`
	FollowingID uint      `json:"followingId" gorm:"not null;uniqueIndex:idx_follows_pair;index"`
	CreatedAt   time.Time `json:"createdAt"`
}
