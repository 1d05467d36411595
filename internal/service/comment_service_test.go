package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
)

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	fan := &model.User{ID: 2, Name: "Fan"}

	t.Run("empty content", func(t *testing.T) {
		svc := NewCommentService(new(MockCommentRepository), new(MockSongRepository), new(MockUserRepository), nil)
		_, err := svc.Create(ctx, fan, 5, "   ")
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("unknown song", func(t *testing.T) {
		songs := new(MockSongRepository)
		songs.On("FindByID", ctx, uint(5)).Return(nil, gorm.ErrRecordNotFound)
		svc := NewCommentService(new(MockCommentRepository), songs, new(MockUserRepository), nil)
		_, err := svc.Create(ctx, fan, 5, "nice")
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run("notification failure is isolated", func(t *testing.T) {
		songs := new(MockSongRepository)
		songs.On("FindByID", ctx, uint(5)).Return(&model.Song{ID: 5, UserID: 1, Title: "Song"}, nil)
		comments := new(MockCommentRepository)
		comments.On("Create", ctx, mock.MatchedBy(func(c *model.Comment) bool {
			return c.Content == "nice take" && c.SongID == 5 && c.UserID == 2
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Comment).ID = 30
		}).Return(nil)
		comments.On("FindView", ctx, uint(30)).Return(&model.CommentView{ID: 30, Content: "nice take", UserName: "Fan"}, nil)
		notifications := new(MockNotificationRepository)
		notifications.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == 1 && n.Type == model.NotificationComment && *n.RelatedID == 30
		})).Return(errors.New("deadlock"))

		svc := NewCommentService(comments, songs, new(MockUserRepository), NewNotificationService(notifications))
		got, err := svc.Create(ctx, fan, 5, "  nice take ")
		require.NoError(t, err)
		assert.Equal(t, uint(30), got.ID)
		notifications.AssertExpectations(t)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	comments := new(MockCommentRepository)
	comments.On("FindByID", ctx, uint(30)).Return(&model.Comment{ID: 30, UserID: 2}, nil)
	comments.On("Delete", ctx, uint(30)).Return(nil)
	comments.On("FindByID", ctx, uint(31)).Return(&model.Comment{ID: 31, UserID: 4}, nil)
	comments.On("FindByID", ctx, uint(32)).Return(&model.Comment{ID: 32, UserID: 5}, nil)
	comments.On("Delete", ctx, uint(32)).Return(nil)
	users := new(MockUserRepository)
	users.On("FindByID", ctx, uint(4)).Return(&model.User{ID: 4, Role: model.RoleAdmin}, nil)
	users.On("FindByID", ctx, uint(5)).Return(nil, gorm.ErrRecordNotFound)
	svc := NewCommentService(comments, new(MockSongRepository), users, nil)
	admin := &model.User{ID: 9, Role: model.RoleAdmin}

	assert.True(t, apperrors.IsKind(svc.Delete(ctx, &model.User{ID: 3}, 30), apperrors.KindForbidden))
	require.NoError(t, svc.Delete(ctx, &model.User{ID: 2}, 30))
	assert.True(t, apperrors.IsKind(svc.Delete(ctx, admin, 31), apperrors.KindForbidden), "admins cannot override other admins")
	require.NoError(t, svc.Delete(ctx, admin, 32), "rows of a removed account stay moderatable")
	comments.AssertNumberOfCalls(t, "Delete", 2)
}
