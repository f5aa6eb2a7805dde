package models

type Comment struct {
	ID               string `gorm:"primaryKey" json:"commentId"`
	PostID           string `gorm:"not null;index" json:"postId"`
	UserID           string `gorm:"not null;index" json:"userId"`
	Username         string `gorm:"not null" json:"username"`
	UserProfileImage string `json:"userProfileImage"`
	Text             string `gorm:"not null" json:"text"`
	Timestamp        int64  `gorm:"not null;index" json:"timestamp"`
}
