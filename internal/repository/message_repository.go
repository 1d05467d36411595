package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"dcover/internal/model"
)

// MessageRepository defines conversation and message persistence.
type MessageRepository interface {
	FindConversation(ctx context.Context, id uint) (*model.Conversation, error)
	FindConversationBetween(ctx context.Context, a, b uint) (*model.Conversation, error)
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	TouchConversation(ctx context.Context, id uint, at time.Time) error
	ListConversations(ctx context.Context, userID uint) ([]model.ConversationView, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, conversationID uint) ([]model.Message, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
	reader
}

// NewMessageRepository builds a GORM-backed repository with sqlx reads.
func NewMessageRepository(db *gorm.DB, rdb *sqlx.DB) MessageRepository {
	return &messageRepository{db: db, reader: reader{db: rdb}}
}

func (r *messageRepository) FindConversation(ctx context.Context, id uint) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindConversationBetween matches the pair in either order, so rows written
// before pairs were normalized are still found.
func (r *messageRepository) FindConversationBetween(ctx context.Context, a, b uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		Order("id ASC").
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// CreateConversation stores the pair with the lower user id first.
func (r *messageRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	if conv.User1ID > conv.User2ID {
		conv.User1ID, conv.User2ID = conv.User2ID, conv.User1ID
	}
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *messageRepository) TouchConversation(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
}

// ListConversations returns the user's inbox, most recently active first.
func (r *messageRepository) ListConversations(ctx context.Context, userID uint) ([]model.ConversationView, error) {
	q := qb.Select("c.id", "c.created_at", "c.updated_at",
		"u.id AS other_user_id", "u.name AS other_user_name",
		"u.username AS other_user_username", "u.photo_url AS other_user_photo",
		"(SELECT m.content FROM messages m WHERE m.conversation_id = c.id ORDER BY m.id DESC LIMIT 1) AS last_message",
		"(SELECT m.sender_id FROM messages m WHERE m.conversation_id = c.id ORDER BY m.id DESC LIMIT 1) AS last_sender_id").
		Column(sq.Expr("(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id AND m.sender_id <> ? AND m.is_read = ?) AS unread_count", userID, false)).
		From("conversations c").
		Join("users u ON u.id = CASE WHEN c.user1_id = ? THEN c.user2_id ELSE c.user1_id END", userID).
		Where(sq.Or{sq.Eq{"c.user1_id": userID}, sq.Eq{"c.user2_id": userID}}).
		OrderBy("c.updated_at DESC", "c.id DESC")

	convs := []model.ConversationView{}
	if err := r.selectAll(ctx, &convs, q); err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *messageRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) ListMessages(ctx context.Context, conversationID uint) ([]model.Message, error) {
	msgs := []model.Message{}
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Order("id ASC").
		Find(&msgs).Error
	return msgs, err
}

// MarkConversationRead marks messages sent to readerID as read.
func (r *messageRepository) MarkConversationRead(ctx context.Context, conversationID, readerID uint) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}

func (r *messageRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Joins("JOIN conversations c ON c.id = messages.conversation_id").
		Where("(c.user1_id = ? OR c.user2_id = ?) AND messages.sender_id <> ? AND messages.is_read = ?", userID, userID, userID, false).
		Count(&count).Error
	return count, err
}
