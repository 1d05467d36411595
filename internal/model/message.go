package model

import "time"

// Conversation is a direct-message thread between two users. New rows are
// written with User1ID < User2ID.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   uint      `json:"user1Id" gorm:"not null;uniqueIndex:idx_conversations_pair"`
	User2ID   uint      `json:"user2Id" gorm:"not null;uniqueIndex:idx_conversations_pair;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"index"`
}

// HasParticipant reports whether userID is one side of the pair.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the side of the pair that is not userID.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Message is one direct message.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversationId" gorm:"not null;index"`
	SenderID       uint      `json:"senderId" gorm:"not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	IsRead         bool      `json:"isRead" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
}

// ConversationView is one row of a user's inbox, flattened for scanning.
type ConversationView struct {
	ID                uint      `db:"id"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
	OtherUserID       uint      `db:"other_user_id"`
	OtherUserName     string    `db:"other_user_name"`
	OtherUserUsername *string   `db:"other_user_username"`
	OtherUserPhoto    *string   `db:"other_user_photo"`
	LastMessage       *string   `db:"last_message"`
	LastSenderID      *uint     `db:"last_sender_id"`
	UnreadCount       int64     `db:"unread_count"`
}

// ConversationSummary is the inbox entry returned by the API.
type ConversationSummary struct {
	ID           uint      `json:"id"`
	OtherUser    UserRef   `json:"otherUser"`
	LastMessage  *string   `json:"lastMessage"`
	LastSenderID *uint     `json:"lastSenderId"`
	UnreadCount  int64     `json:"unreadCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary reshapes the flat inbox row.
func (v ConversationView) Summary() ConversationSummary {
	return ConversationSummary{
		ID: v.ID,
		OtherUser: UserRef{
			ID:       v.OtherUserID,
			Name:     v.OtherUserName,
			Username: v.OtherUserUsername,
			PhotoURL: v.OtherUserPhoto,
		},
		LastMessage:  v.LastMessage,
		LastSenderID: v.LastSenderID,
		UnreadCount:  v.UnreadCount,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
