package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/samber/lo"

	"dcover/internal/config"
	"dcover/internal/db"
	"dcover/internal/model"
	"dcover/internal/repository"
)

const defaultSeedFile = "seed.json"

// Fixture is the on-disk seed format. Rows reference users by email and
// albums by title so the file needs no database ids.
type Fixture struct {
	Users   []SeedUser   `json:"users"`
	Albums  []SeedAlbum  `json:"albums"`
	Songs   []SeedSong   `json:"songs"`
	Follows []SeedFollow `json:"follows"`
	Banners []SeedBanner `json:"banners"`
}

type SeedUser struct {
	GoogleID string  `json:"googleId"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Username *string `json:"username"`
	PhotoURL *string `json:"photoUrl"`
	Bio      *string `json:"bio"`
	Role     string  `json:"role"`
}

type SeedAlbum struct {
	Owner      string  `json:"owner"`
	Title      string  `json:"title"`
	CoverImage *string `json:"coverImage"`
}

type SeedSong struct {
	Owner          string  `json:"owner"`
	Album          string  `json:"album"`
	Title          string  `json:"title"`
	OriginalArtist string  `json:"originalArtist"`
	AudioFile      string  `json:"audioFile"`
	CoverImage     *string `json:"coverImage"`
	Lyrics         *string `json:"lyrics"`
	IsPublic       *bool   `json:"isPublic"`
}

type SeedFollow struct {
	Follower  string `json:"follower"`
	Following string `json:"following"`
}

type SeedBanner struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	LinkURL     *string `json:"linkUrl"`
	CreatedBy   string  `json:"createdBy"`
}

// Summary counts rows inserted by one run. Rows already present are skipped.
type Summary struct {
	Users, Albums, Songs, Follows, Banners int
}

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.GommonLevel())

	path := os.Getenv("SEED_FILE")
	if path == "" {
		path = defaultSeedFile
	}
	fixture, err := loadFixture(path)
	if err != nil {
		log.Fatalf("load fixture: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolConfig{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("%v", err)
	}
	reader, err := db.Reader(gormDB)
	if err != nil {
		log.Fatalf("database reader: %v", err)
	}

	s := &seeder{
		users:   repository.NewUserRepository(gormDB, reader),
		albums:  repository.NewAlbumRepository(gormDB, reader),
		songs:   repository.NewSongRepository(gormDB, reader),
		follows: repository.NewFollowRepository(gormDB, reader),
		banners: repository.NewBannerRepository(gormDB),
	}
	sum, err := s.run(context.Background(), fixture)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Infof("seed completed from %s: %d users, %d albums, %d songs, %d follows, %d banners",
		path, sum.Users, sum.Albums, sum.Songs, sum.Follows, sum.Banners)
}

func loadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

type seeder struct {
	users   repository.UserRepository
	albums  repository.AlbumRepository
	songs   repository.SongRepository
	follows repository.FollowRepository
	banners repository.BannerRepository
}

func (s *seeder) run(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary
	userIDs := make(map[string]uint, len(f.Users))

	for _, u := range f.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		existing, err := s.users.FindByEmail(ctx, email)
		if err == nil {
			userIDs[email] = existing.ID
			continue
		}
		if !repository.IsNotFound(err) {
			return sum, fmt.Errorf("find user %s: %w", email, err)
		}

		user := &model.User{
			GoogleID: lo.Ternary(u.GoogleID != "", u.GoogleID, "seed-"+email),
			Email:    email,
			Name:     u.Name,
			Username: u.Username,
			PhotoURL: u.PhotoURL,
			Bio:      u.Bio,
			Role:     lo.Ternary(u.Role == model.RoleAdmin, model.RoleAdmin, model.RoleUser),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return sum, fmt.Errorf("create user %s: %w", email, err)
		}
		userIDs[email] = user.ID
		sum.Users++
	}

	owner := func(email string) (uint, error) {
		id, ok := userIDs[strings.ToLower(strings.TrimSpace(email))]
		if !ok {
			return 0, fmt.Errorf("unknown user %q", email)
		}
		return id, nil
	}

	type albumKey struct {
		owner uint
		title string
	}
	albumIDs := make(map[albumKey]uint)
	for _, a := range f.Albums {
		ownerID, err := owner(a.Owner)
		if err != nil {
			return sum, fmt.Errorf("album %q: %w", a.Title, err)
		}
		existing, err := s.albums.ListByUser(ctx, ownerID)
		if err != nil {
			return sum, fmt.Errorf("list albums: %w", err)
		}
		if found, ok := lo.Find(existing, func(v model.AlbumView) bool { return v.Title == a.Title }); ok {
			albumIDs[albumKey{ownerID, a.Title}] = found.ID
			continue
		}

		album := &model.Album{Title: a.Title, CoverImage: a.CoverImage, UserID: ownerID}
		if err := s.albums.Create(ctx, album); err != nil {
			return sum, fmt.Errorf("create album %q: %w", a.Title, err)
		}
		albumIDs[albumKey{ownerID, a.Title}] = album.ID
		sum.Albums++
	}

	for _, sg := range f.Songs {
		ownerID, err := owner(sg.Owner)
		if err != nil {
			return sum, fmt.Errorf("song %q: %w", sg.Title, err)
		}
		existing, err := s.songs.ListByUser(ctx, ownerID, true)
		if err != nil {
			return sum, fmt.Errorf("list songs: %w", err)
		}
		if lo.ContainsBy(existing, func(v model.SongView) bool { return v.Title == sg.Title }) {
			continue
		}

		song := &model.Song{
			Title:          sg.Title,
			OriginalArtist: sg.OriginalArtist,
			AudioFile:      sg.AudioFile,
			CoverImage:     sg.CoverImage,
			Lyrics:         sg.Lyrics,
			UserID:         ownerID,
			IsPublic:       lo.ToPtr(lo.FromPtrOr(sg.IsPublic, true)),
		}
		if sg.Album != "" {
			id, ok := albumIDs[albumKey{ownerID, sg.Album}]
			if !ok {
				return sum, fmt.Errorf("song %q: unknown album %q", sg.Title, sg.Album)
			}
			song.AlbumID = &id
		}
		if err := s.songs.Create(ctx, song); err != nil {
			return sum, fmt.Errorf("create song %q: %w", sg.Title, err)
		}
		sum.Songs++
	}

	for _, fl := range f.Follows {
		followerID, err := owner(fl.Follower)
		if err != nil {
			return sum, err
		}
		followingID, err := owner(fl.Following)
		if err != nil {
			return sum, err
		}
		if followerID == followingID {
			log.Warnf("seed: skipping self-follow of %s", fl.Follower)
			continue
		}
		exists, err := s.follows.Exists(ctx, followerID, followingID)
		if err != nil {
			return sum, fmt.Errorf("check follow: %w", err)
		}
		if exists {
			continue
		}
		if err := s.follows.Create(ctx, &model.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
			return sum, fmt.Errorf("create follow: %w", err)
		}
		sum.Follows++
	}

	if len(f.Banners) > 0 {
		current, err := s.banners.ListAll(ctx)
		if err != nil {
			return sum, fmt.Errorf("list banners: %w", err)
		}
		for _, b := range f.Banners {
			if lo.ContainsBy(current, func(v model.Banner) bool { return v.Title == b.Title }) {
				continue
			}
			creator, err := owner(b.CreatedBy)
			if err != nil {
				return sum, fmt.Errorf("banner %q: %w", b.Title, err)
			}
			banner := &model.Banner{
				Title:       b.Title,
				Description: b.Description,
				ImageURL:    b.ImageURL,
				LinkURL:     b.LinkURL,
				IsActive:    true,
				CreatedBy:   creator,
			}
			if err := s.banners.Create(ctx, banner); err != nil {
				return sum, fmt.Errorf("create banner %q: %w", b.Title, err)
			}
			sum.Banners++
		}
	}

	return sum, nil
}
