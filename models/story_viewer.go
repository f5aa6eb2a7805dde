package models

// StoryViewer records one view per (story, viewer). Re-viewing hits the
// unique index and is treated as a no-op, not an error.
type StoryViewer struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	StoryID   string `gorm:"not null;index;uniqueIndex:idx_story_viewers_story_user" json:"storyId"`
	UserID    string `gorm:"not null;index;uniqueIndex:idx_story_viewers_story_user" json:"userId"`
	Timestamp int64  `gorm:"not null" json:"timestamp"`
}
