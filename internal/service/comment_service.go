package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

// CommentService handles song comments.
type CommentService interface {
	ListBySong(ctx context.Context, songID uint) ([]model.CommentView, error)
	Create(ctx context.Context, user *model.User, songID uint, content string) (*model.CommentView, error)
	Delete(ctx context.Context, user *model.User, id uint) error
}

type commentService struct {
	commentRepo   repository.CommentRepository
	songRepo      repository.SongRepository
	notifications NotificationService
	ownership     ownership
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, songRepo repository.SongRepository, userRepo repository.UserRepository, notifications NotificationService) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		songRepo:      songRepo,
		notifications: notifications,
		ownership:     ownership{users: userRepo},
	}
}

func (s *commentService) ListBySong(ctx context.Context, songID uint) ([]model.CommentView, error) {
	return s.commentRepo.ListBySong(ctx, songID)
}

// Create stores the comment and notifies the song owner.
func (s *commentService) Create(ctx context.Context, user *model.User, songID uint, content string) (*model.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Comment cannot be empty")
	}

	song, err := s.songRepo.FindByID(ctx, songID)
	if err != nil {
		return nil, notFoundOr(err, "Song not found")
	}

	comment := &model.Comment{SongID: song.ID, UserID: user.ID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.notifications.Notify(ctx, &model.Notification{
		UserID:     song.UserID,
		FromUserID: &user.ID,
		Type:       model.NotificationComment,
		SongID:     &song.ID,
		RelatedID:  &comment.ID,
		Message:    fmt.Sprintf("%s commented on your cover \"%s\"", user.Name, song.Title),
	})

	return s.commentRepo.FindView(ctx, comment.ID)
}

func (s *commentService) Delete(ctx context.Context, user *model.User, id uint) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Comment not found")
	}
	if err := s.ownership.check(ctx, user, comment.UserID, "You can only delete your own comments"); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}
