package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

// SongInput is the payload for a new song.
type SongInput struct {
	Title          string
	OriginalArtist string
	AudioFile      string
	CoverImage     *string
	AlbumID        *uint
	Lyrics         *string
	IsPublic       *bool
}

// SongUpdate is a partial update. Nil fields are left unchanged; AlbumID
// with Set and a nil ID unassigns the album.
type SongUpdate struct {
	Title          *string
	OriginalArtist *string
	CoverImage     *string
	Lyrics         *string
	IsPublic       *bool
	AlbumID        model.OptionalID
}

// LikeResult reports the caller's like state after a toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// SongService handles songs, likes and plays.
type SongService interface {
	Feed(ctx context.Context) ([]model.SongView, error)
	Get(ctx context.Context, viewer *model.User, id uint) (*model.SongView, error)
	ListByUser(ctx context.Context, viewer *model.User, userID uint) ([]model.SongView, error)
	ListByAlbum(ctx context.Context, viewer *model.User, albumID uint) ([]model.SongView, error)
	Create(ctx context.Context, user *model.User, in SongInput) (*model.SongView, error)
	Update(ctx context.Context, user *model.User, id uint, in SongUpdate) (*model.SongView, error)
	SetVisibility(ctx context.Context, user *model.User, id uint, isPublic *bool) (*model.SongView, error)
	ToggleLike(ctx context.Context, user *model.User, id uint) (*LikeResult, error)
	IsLiked(ctx context.Context, user *model.User, id uint) (bool, error)
	Play(ctx context.Context, id uint) (int, error)
	Delete(ctx context.Context, user *model.User, id uint) error
}

type songService struct {
	songRepo      repository.SongRepository
	albumRepo     repository.AlbumRepository
	notifications NotificationService
	media         MediaRemover
	ownership     ownership
}

// NewSongService creates a new song service. media may be nil when uploads
// are not stored locally.
func NewSongService(songRepo repository.SongRepository, albumRepo repository.AlbumRepository, userRepo repository.UserRepository, notifications NotificationService, media MediaRemover) SongService {
	return &songService{
		songRepo:      songRepo,
		albumRepo:     albumRepo,
		notifications: notifications,
		media:         media,
		ownership:     ownership{users: userRepo},
	}
}

func (s *songService) Feed(ctx context.Context) ([]model.SongView, error) {
	return s.songRepo.ListPublic(ctx)
}

// Get hides private songs from everyone but the owner and admins.
func (s *songService) Get(ctx context.Context, viewer *model.User, id uint) (*model.SongView, error) {
	song, err := s.songRepo.FindView(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Song not found")
	}
	if !song.Visible() && !viewer.CanView(song.UserID) {
		return nil, apperrors.NotFound("Song not found")
	}
	return song, nil
}

// ListByUser includes private songs only for their owner.
func (s *songService) ListByUser(ctx context.Context, viewer *model.User, userID uint) ([]model.SongView, error) {
	return s.songRepo.ListByUser(ctx, userID, viewer != nil && viewer.ID == userID)
}

func (s *songService) ListByAlbum(ctx context.Context, viewer *model.User, albumID uint) ([]model.SongView, error) {
	album, err := s.albumRepo.FindByID(ctx, albumID)
	if err != nil {
		return nil, notFoundOr(err, "Album not found")
	}
	return s.songRepo.ListByAlbum(ctx, albumID, viewer.CanView(album.UserID))
}

func (s *songService) Create(ctx context.Context, user *model.User, in SongInput) (*model.SongView, error) {
	song := &model.Song{
		Title:          strings.TrimSpace(in.Title),
		OriginalArtist: strings.TrimSpace(in.OriginalArtist),
		AudioFile:      strings.TrimSpace(in.AudioFile),
		CoverImage:     nullable(trimmed(in.CoverImage)),
		Lyrics:         nullable(in.Lyrics),
		UserID:         user.ID,
		IsPublic:       in.IsPublic,
	}
	if song.Title == "" || song.OriginalArtist == "" || song.AudioFile == "" {
		return nil, apperrors.Validation("Title, original artist and audio file are required")
	}
	if song.IsPublic == nil {
		public := true
		song.IsPublic = &public
	}
	if in.AlbumID != nil {
		if err := s.checkAlbum(ctx, *in.AlbumID, user.ID); err != nil {
			return nil, err
		}
		song.AlbumID = in.AlbumID
	}

	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, fmt.Errorf("create song: %w", err)
	}
	return s.songRepo.FindView(ctx, song.ID)
}

func (s *songService) Update(ctx context.Context, user *model.User, id uint, in SongUpdate) (*model.SongView, error) {
	song, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if title := trimmed(in.Title); title != nil {
		if *title == "" {
			return nil, apperrors.Validation("Title cannot be empty")
		}
		fields["title"] = *title
	}
	if artist := trimmed(in.OriginalArtist); artist != nil {
		if *artist == "" {
			return nil, apperrors.Validation("Original artist cannot be empty")
		}
		fields["original_artist"] = *artist
	}
	if in.Lyrics != nil {
		fields["lyrics"] = nullable(in.Lyrics)
	}
	if cover := trimmed(in.CoverImage); cover != nil {
		fields["cover_image"] = nullable(cover)
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}
	if in.AlbumID.Set {
		if in.AlbumID.ID != nil {
			if err := s.checkAlbum(ctx, *in.AlbumID.ID, song.UserID); err != nil {
				return nil, err
			}
		}
		fields["album_id"] = in.AlbumID.ID
	}

	if len(fields) > 0 {
		if err := s.songRepo.Update(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update song: %w", err)
		}
	}
	return s.songRepo.FindView(ctx, id)
}

// SetVisibility applies isPublic, or flips the current value when nil.
func (s *songService) SetVisibility(ctx context.Context, user *model.User, id uint, isPublic *bool) (*model.SongView, error) {
	song, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	next := !song.Visible()
	if isPublic != nil {
		next = *isPublic
	}
	if err := s.songRepo.Update(ctx, id, map[string]any{"is_public": next}); err != nil {
		return nil, fmt.Errorf("update visibility: %w", err)
	}
	return s.songRepo.FindView(ctx, id)
}

func (s *songService) ToggleLike(ctx context.Context, user *model.User, id uint) (*LikeResult, error) {
	song, err := s.songRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Song not found")
	}

	liked, likes, err := s.songRepo.ToggleLike(ctx, id, user.ID)
	if err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Conflict("Like already recorded")
		}
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	if liked {
		s.notifications.Notify(ctx, &model.Notification{
			UserID:     song.UserID,
			FromUserID: &user.ID,
			Type:       model.NotificationLike,
			SongID:     &song.ID,
			RelatedID:  &song.ID,
			Message:    fmt.Sprintf("%s liked your cover \"%s\"", user.Name, song.Title),
		})
	}
	return &LikeResult{Liked: liked, Likes: likes}, nil
}

func (s *songService) IsLiked(ctx context.Context, user *model.User, id uint) (bool, error) {
	return s.songRepo.HasLiked(ctx, id, user.ID)
}

func (s *songService) Play(ctx context.Context, id uint) (int, error) {
	plays, err := s.songRepo.IncrementPlays(ctx, id)
	if err != nil {
		return 0, notFoundOr(err, "Song not found")
	}
	return plays, nil
}

func (s *songService) Delete(ctx context.Context, user *model.User, id uint) error {
	song, err := s.owned(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.songRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Song not found")
	}
	s.removeMedia(ctx, song)
	return nil
}

// owned loads the song and checks the caller may modify it.
// removeMedia drops the deleted song's audio and its own cover. A cover
// shared with the song's album stays.
func (s *songService) removeMedia(ctx context.Context, song *model.Song) {
	if s.media == nil {
		return
	}
	s.media.Remove(ctx, song.AudioFile)
	if song.CoverImage == nil {
		return
	}
	if song.AlbumID != nil {
		album, err := s.albumRepo.FindByID(ctx, *song.AlbumID)
		if err == nil && album.CoverImage != nil && *album.CoverImage == *song.CoverImage {
			return
		}
	}
	s.media.Remove(ctx, *song.CoverImage)
}

func (s *songService) owned(ctx context.Context, user *model.User, id uint) (*model.Song, error) {
	song, err := s.songRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Song not found")
	}
	if err := s.ownership.check(ctx, user, song.UserID, "You can only modify your own songs"); err != nil {
		return nil, err
	}
	return song, nil
}

func (s *songService) checkAlbum(ctx context.Context, albumID, ownerID uint) error {
	album, err := s.albumRepo.FindByID(ctx, albumID)
	if err != nil {
		return notFoundOr(err, "Album not found")
	}
	if album.UserID != ownerID {
		return apperrors.Forbidden("Album belongs to another user")
	}
	return nil
}
