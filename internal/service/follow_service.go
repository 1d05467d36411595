package service

import (
	"context"
	"fmt"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

// FollowService handles the follow graph.
type FollowService interface {
	Follow(ctx context.Context, user *model.User, targetID uint) error
	Unfollow(ctx context.Context, user *model.User, targetID uint) error
	IsFollowing(ctx context.Context, user *model.User, targetID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]model.UserSummary, error)
	Following(ctx context.Context, userID uint) ([]model.UserSummary, error)
}

type followService struct {
	followRepo    repository.FollowRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, notifications NotificationService) FollowService {
	return &followService{
		followRepo:    followRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *followService) Follow(ctx context.Context, user *model.User, targetID uint) error {
	if user.ID == targetID {
		return apperrors.Validation("You cannot follow yourself")
	}
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}

	exists, err := s.followRepo.Exists(ctx, user.ID, target.ID)
	if err != nil {
		return fmt.Errorf("check follow: %w", err)
	}
	if exists {
		return apperrors.Conflict("Already following this user")
	}

	if err := s.followRepo.Create(ctx, &model.Follow{FollowerID: user.ID, FollowingID: target.ID}); err != nil {
		if repository.IsDuplicate(err) {
			return apperrors.Conflict("Already following this user")
		}
		return fmt.Errorf("create follow: %w", err)
	}

	s.notifications.Notify(ctx, &model.Notification{
		UserID:     target.ID,
		FromUserID: &user.ID,
		Type:       model.NotificationFollow,
		RelatedID:  &user.ID,
		Message:    fmt.Sprintf("%s started following you", user.Name),
	})
	return nil
}

// Unfollow is idempotent.
func (s *followService) Unfollow(ctx context.Context, user *model.User, targetID uint) error {
	return s.followRepo.Delete(ctx, user.ID, targetID)
}

func (s *followService) IsFollowing(ctx context.Context, user *model.User, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, user.ID, targetID)
}

func (s *followService) Followers(ctx context.Context, userID uint) ([]model.UserSummary, error) {
	return s.followRepo.Followers(ctx, userID)
}

func (s *followService) Following(ctx context.Context, userID uint) ([]model.UserSummary, error) {
	return s.followRepo.Following(ctx, userID)
}
