package models

// Like rows are unique per (post, user): liking twice violates the
// index and is surfaced to the caller as a conflict.
type Like struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    string `gorm:"not null;index;uniqueIndex:idx_likes_post_user" json:"postId"`
	UserID    string `gorm:"not null;index;uniqueIndex:idx_likes_post_user" json:"userId"`
	Timestamp int64  `gorm:"not null" json:"timestamp"`
}
