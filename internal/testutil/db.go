// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dcover/internal/db"
	"dcover/internal/model"
)

// NewDB returns a migrated in-memory SQLite database and a sqlx reader over
// the same single connection.
func NewDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	rdb, err := db.Reader(gdb)
	require.NoError(t, err)
	return gdb, rdb
}

// CreateUser inserts a user named name with an email and username derived
// from it.
func CreateUser(t *testing.T, gdb *gorm.DB, name string) *model.User {
	t.Helper()

	username := name
	user := &model.User{
		GoogleID: fmt.Sprintf("google-%s", name),
		Email:    fmt.Sprintf("%s@example.com", name),
		Name:     name,
		Username: &username,
		Role:     model.RoleUser,
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

// CreateSong inserts a song owned by userID.
func CreateSong(t *testing.T, gdb *gorm.DB, userID uint, title string, public bool) *model.Song {
	t.Helper()

	song := &model.Song{
		Title:          title,
		OriginalArtist: "Artist",
		AudioFile:      "https://cdn.example.com/" + title + ".mp3",
		UserID:         userID,
		IsPublic:       &public,
	}
	require.NoError(t, gdb.Create(song).Error)
	return song
}
