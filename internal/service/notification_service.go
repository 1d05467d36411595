package service

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"dcover/internal/model"
	"dcover/internal/repository"
)

// NotificationPageSize bounds the notification listing.
const NotificationPageSize = 50

// NotificationList is the caller's notification page.
type NotificationList struct {
	Notifications []model.NotificationView `json:"notifications"`
	UnreadCount   int64                    `json:"unreadCount"`
}

// NotificationService handles notification delivery and reads.
type NotificationService interface {
	Notify(ctx context.Context, n *model.Notification)
	List(ctx context.Context, userID uint) (*NotificationList, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// Notify stores n. Delivery is best-effort: failures are logged and never
// reach the caller, so the triggering action still succeeds.
func (s *notificationService) Notify(ctx context.Context, n *model.Notification) {
	if n == nil || n.UserID == 0 {
		return
	}
	if n.FromUserID != nil && *n.FromUserID == n.UserID {
		return
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Warnf("notify user %d (%s): %v", n.UserID, n.Type, err)
	}
}

func (s *notificationService) List(ctx context.Context, userID uint) (*NotificationList, error) {
	items, err := s.repo.ListForUser(ctx, userID, NotificationPageSize)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread notifications: %w", err)
	}
	return &NotificationList{Notifications: items, UnreadCount: unread}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}
