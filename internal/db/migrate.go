package db

import (
	"fmt"

	"gorm.io/gorm"

	"dcover/internal/model"
)

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Album{},
		&model.Song{},
		&model.SongLike{},
		&model.Comment{},
		&model.Follow{},
		&model.Banner{},
		&model.Notification{},
		&model.Conversation{},
		&model.Message{},
	}
}

// Migrate creates or updates the schema for all models.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first.
func Reset(gormDB *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := gormDB.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
