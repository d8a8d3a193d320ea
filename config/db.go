package config

import (
	"fmt"

	"github.com/liyunrui/meal-prep/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the SQLite database file and migrates the schema.
// TranslateError lets callers detect uniqueness violations through
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database.Path, err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.FoodEntry{},
		&models.TdeeTarget{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
