package models

// Post carries denormalized author fields (username, avatar) so feed
// reads never join against users.
type Post struct {
	ID               string `gorm:"primaryKey" json:"postId"`
	UserID           string `gorm:"not null;index" json:"userId"`
	Username         string `gorm:"not null" json:"username"`
	UserProfileImage string `json:"userProfileImage"`
	PostImageUrl     string `json:"postImageUrl"`
	Caption          string `gorm:"not null" json:"caption"`
	Timestamp        int64  `gorm:"not null;index" json:"timestamp"`
}
