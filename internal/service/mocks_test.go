package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dcover/internal/auth"
	"dcover/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) ListWithSongCount(ctx context.Context) ([]model.AdminUserView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.AdminUserView), args.Error(1)
}

func (m *MockUserRepository) Suggestions(ctx context.Context, userID uint, limit uint64) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, term string, limit uint64) ([]model.UserSummary, error) {
	args := m.Called(ctx, term, limit)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockUserRepository) Profile(ctx context.Context, id uint) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

// MockSongRepository is a mock implementation of SongRepository.
type MockSongRepository struct {
	mock.Mock
}

func (m *MockSongRepository) Create(ctx context.Context, song *model.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) FindByID(ctx context.Context, id uint) (*model.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Song), args.Error(1)
}

func (m *MockSongRepository) FindView(ctx context.Context, id uint) (*model.SongView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SongView), args.Error(1)
}

func (m *MockSongRepository) ListPublic(ctx context.Context) ([]model.SongView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.SongView), args.Error(1)
}

func (m *MockSongRepository) ListByUser(ctx context.Context, userID uint, includePrivate bool) ([]model.SongView, error) {
	args := m.Called(ctx, userID, includePrivate)
	return args.Get(0).([]model.SongView), args.Error(1)
}

func (m *MockSongRepository) ListByAlbum(ctx context.Context, albumID uint, includePrivate bool) ([]model.SongView, error) {
	args := m.Called(ctx, albumID, includePrivate)
	return args.Get(0).([]model.SongView), args.Error(1)
}

func (m *MockSongRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockSongRepository) ToggleLike(ctx context.Context, songID, userID uint) (bool, int, error) {
	args := m.Called(ctx, songID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockSongRepository) HasLiked(ctx context.Context, songID, userID uint) (bool, error) {
	args := m.Called(ctx, songID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSongRepository) IncrementPlays(ctx context.Context, id uint) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockSongRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAlbumRepository is a mock implementation of AlbumRepository.
type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) Create(ctx context.Context, album *model.Album) error {
	args := m.Called(ctx, album)
	return args.Error(0)
}

func (m *MockAlbumRepository) FindByID(ctx context.Context, id uint) (*model.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Album), args.Error(1)
}

func (m *MockAlbumRepository) FindView(ctx context.Context, id uint) (*model.AlbumView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AlbumView), args.Error(1)
}

func (m *MockAlbumRepository) List(ctx context.Context) ([]model.AlbumView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.AlbumView), args.Error(1)
}

func (m *MockAlbumRepository) ListByUser(ctx context.Context, userID uint) ([]model.AlbumView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.AlbumView), args.Error(1)
}

func (m *MockAlbumRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockAlbumRepository) CountSongs(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlbumRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindView(ctx context.Context, id uint) (*model.CommentView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommentView), args.Error(1)
}

func (m *MockCommentRepository) ListBySong(ctx context.Context, songID uint) ([]model.CommentView, error) {
	args := m.Called(ctx, songID)
	return args.Get(0).([]model.CommentView), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFollowRepository is a mock implementation of FollowRepository.
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *model.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID uint) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID uint) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

// MockBannerRepository is a mock implementation of BannerRepository.
type MockBannerRepository struct {
	mock.Mock
}

func (m *MockBannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) FindByID(ctx context.Context, id uint) (*model.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Banner), args.Error(1)
}

func (m *MockBannerRepository) ListActive(ctx context.Context) ([]model.Banner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Banner), args.Error(1)
}

func (m *MockBannerRepository) ListAll(ctx context.Context) ([]model.Banner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Banner), args.Error(1)
}

func (m *MockBannerRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockBannerRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID uint, limit uint64) ([]model.NotificationView, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.NotificationView), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindConversation(ctx context.Context, id uint) (*model.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *MockMessageRepository) FindConversationBetween(ctx context.Context, a, b uint) (*model.Conversation, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *MockMessageRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockMessageRepository) TouchConversation(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockMessageRepository) ListConversations(ctx context.Context, userID uint) ([]model.ConversationView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.ConversationView), args.Error(1)
}

func (m *MockMessageRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListMessages(ctx context.Context, conversationID uint) ([]model.Message, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, conversationID, readerID uint) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockIdentityVerifier is a mock implementation of IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, idToken string) (*auth.Identity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}
