package model

import "time"

// Banner is an admin-curated carousel entry with an optional visibility
// window.
type Banner struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description *string    `json:"description" gorm:"type:text"`
	ImageURL    string     `json:"imageUrl" gorm:"type:text;not null"`
	LinkURL     *string    `json:"linkUrl" gorm:"type:text"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    bool       `json:"isActive" gorm:"not null;index"`
	CreatedBy   uint       `json:"createdBy" gorm:"not null"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// InWindow reports whether now falls inside the banner's window. Open ends
// are unbounded.
func (b *Banner) InWindow(now time.Time) bool {
	if b.StartDate != nil && now.Before(*b.StartDate) {
		return false
	}
	if b.EndDate != nil && now.After(*b.EndDate) {
		return false
	}
	return true
}
