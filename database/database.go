package database

import (
	"fmt"
	"log"

	"content-backend/config"
	"content-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the database and migrates the engagement schema.
// TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey, which the vote and event services rely on to
// resolve concurrent inserts.
func InitDB(cfg *config.Config) error {
	var err error

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = DB.AutoMigrate(
		&models.Article{},
		&models.Vote{},
		&models.Event{},
		&models.DailyAnalytics{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database initialized successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
