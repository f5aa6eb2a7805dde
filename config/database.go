package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/models"
)

// Connect opens the sqlite database with foreign keys enforced and
// creates the base schema idempotently. Index/constraint changes beyond
// the base schema live in the migrations package.
func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.FollowerEdge{},
		&models.FollowingEdge{},
		&models.BlockedEdge{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Story{},
		&models.StoryViewer{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func InitDB(cfg *Config) *gorm.DB {
	db, err := Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	return db
}
