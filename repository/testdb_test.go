package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/config"
	"github.com/vibegram/api-go/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, username string) *models.User {
	t.Helper()
	now := time.Now().UnixMilli()
	user := &models.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		Password:  "$2a$10$notarealhashnotarealhashnotarealhash",
		FullName:  "Test " + username,
		CreatedAt: now,
		LastSeen:  now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, id, userID, caption string) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:        id,
		UserID:    userID,
		Username:  "author",
		Caption:   caption,
		Timestamp: time.Now().UnixMilli(),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
