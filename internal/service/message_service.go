package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

// Thread is one conversation opened by a participant.
type Thread struct {
	Conversation *model.Conversation `json:"conversation"`
	OtherUser    model.UserRef       `json:"otherUser"`
	Messages     []model.Message     `json:"messages"`
}

// MessageService handles direct messages.
type MessageService interface {
	Send(ctx context.Context, sender *model.User, recipientID uint, content string) (*model.Message, error)
	Conversations(ctx context.Context, user *model.User) ([]model.ConversationSummary, error)
	Thread(ctx context.Context, user *model.User, conversationID uint) (*Thread, error)
	ConversationWith(ctx context.Context, user *model.User, otherID uint) (*model.Conversation, error)
	UnreadCount(ctx context.Context, user *model.User) (int64, error)
}

type messageService struct {
	messageRepo   repository.MessageRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	now           func() time.Time
}

// NewMessageService creates a new message service.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, notifications NotificationService) MessageService {
	return &messageService{
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		notifications: notifications,
		now:           time.Now,
	}
}

// Send finds or creates the conversation, stores the message unread and
// notifies the recipient.
func (s *messageService) Send(ctx context.Context, sender *model.User, recipientID uint, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Message cannot be empty")
	}
	if recipientID == sender.ID {
		return nil, apperrors.Validation("You cannot message yourself")
	}
	recipient, err := s.userRepo.FindByID(ctx, recipientID)
	if err != nil {
		return nil, notFoundOr(err, "Recipient not found")
	}

	conv, err := s.findOrCreate(ctx, sender.ID, recipient.ID)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{ConversationID: conv.ID, SenderID: sender.ID, Content: content}
	if err := s.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	if err := s.messageRepo.TouchConversation(ctx, conv.ID, s.now()); err != nil {
		return nil, fmt.Errorf("touch conversation: %w", err)
	}

	s.notifications.Notify(ctx, &model.Notification{
		UserID:     recipient.ID,
		FromUserID: &sender.ID,
		Type:       model.NotificationMessage,
		RelatedID:  &conv.ID,
		Message:    fmt.Sprintf("%s sent you a message", sender.Name),
	})
	return msg, nil
}

func (s *messageService) findOrCreate(ctx context.Context, a, b uint) (*model.Conversation, error) {
	conv, err := s.messageRepo.FindConversationBetween(ctx, a, b)
	if err == nil {
		return conv, nil
	}
	if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("find conversation: %w", err)
	}

	conv = &model.Conversation{User1ID: a, User2ID: b}
	if err := s.messageRepo.CreateConversation(ctx, conv); err != nil {
		if !repository.IsDuplicate(err) {
			return nil, fmt.Errorf("create conversation: %w", err)
		}
		// lost a race with the other participant; use their row
		conv, err = s.messageRepo.FindConversationBetween(ctx, a, b)
		if err != nil {
			return nil, fmt.Errorf("reload conversation: %w", err)
		}
	}
	return conv, nil
}

func (s *messageService) Conversations(ctx context.Context, user *model.User) ([]model.ConversationSummary, error) {
	rows, err := s.messageRepo.ListConversations(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(v model.ConversationView, _ int) model.ConversationSummary {
		return v.Summary()
	}), nil
}

// Thread returns the conversation's messages oldest first and marks the
// other participant's messages as read.
func (s *messageService) Thread(ctx context.Context, user *model.User, conversationID uint) (*Thread, error) {
	conv, err := s.messageRepo.FindConversation(ctx, conversationID)
	if err != nil {
		return nil, notFoundOr(err, "Conversation not found")
	}
	if !conv.HasParticipant(user.ID) {
		return nil, apperrors.Forbidden("Not a participant in this conversation")
	}

	if err := s.messageRepo.MarkConversationRead(ctx, conv.ID, user.ID); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	msgs, err := s.messageRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	other, err := s.userRepo.FindByID(ctx, conv.OtherParticipant(user.ID))
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return &Thread{Conversation: conv, OtherUser: other.Ref(), Messages: msgs}, nil
}

// ConversationWith returns the existing conversation or nil. It never
// creates one.
func (s *messageService) ConversationWith(ctx context.Context, user *model.User, otherID uint) (*model.Conversation, error) {
	conv, err := s.messageRepo.FindConversationBetween(ctx, user.ID, otherID)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *messageService) UnreadCount(ctx context.Context, user *model.User) (int64, error) {
	return s.messageRepo.CountUnread(ctx, user.ID)
}
