// Package migrations applies ordered schema changes on top of the base
// tables. Each migration runs exactly once, inside its own transaction,
// and is recorded in schema_migrations so startup stays idempotent.
package migrations

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	Name string
	Run  func(tx *gorm.DB) error
}

type schemaMigration struct {
	Name      string `gorm:"primaryKey"`
	AppliedAt int64
}

func (schemaMigration) TableName() string { return "schema_migrations" }

var all = []Migration{
	{
		Name: "001_post_indexes",
		Run: func(tx *gorm.DB) error {
			return execAll(tx,
				"CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id)",
				"CREATE INDEX IF NOT EXISTS idx_posts_timestamp ON posts(timestamp)",
				"CREATE INDEX IF NOT EXISTS idx_likes_post_id ON likes(post_id)",
				"CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)",
				"CREATE INDEX IF NOT EXISTS idx_comments_timestamp ON comments(timestamp)",
			)
		},
	},
	{
		Name: "002_story_indexes",
		Run: func(tx *gorm.DB) error {
			return execAll(tx,
				"CREATE INDEX IF NOT EXISTS idx_stories_user_id ON stories(user_id)",
				"CREATE INDEX IF NOT EXISTS idx_stories_timestamp ON stories(timestamp)",
				"CREATE INDEX IF NOT EXISTS idx_stories_expiry ON stories(expiry_timestamp)",
				"CREATE INDEX IF NOT EXISTS idx_story_viewers_story_id ON story_viewers(story_id)",
			)
		},
	},
	{
		Name: "003_edge_indexes",
		Run: func(tx *gorm.DB) error {
			return execAll(tx,
				"CREATE INDEX IF NOT EXISTS idx_followers_follower_id ON followers(follower_id)",
				"CREATE INDEX IF NOT EXISTS idx_following_following_id ON following(following_id)",
			)
		},
	},
}

// Run applies every pending migration in order.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range all {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("name = ?", m.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Name: m.Name, AppliedAt: time.Now().UnixMilli()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Printf("Applied migration %s", m.Name)
	}
	return nil
}

func execAll(tx *gorm.DB, stmts ...string) error {
	for _, s := range stmts {
		if err := tx.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
