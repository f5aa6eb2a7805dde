package models

// User is the account record. IDs are client-supplied text identifiers
// (the mobile client creates them offline) with a server-generated UUID
// as fallback. All timestamps are milliseconds since epoch.
type User struct {
	ID                   string `gorm:"primaryKey" json:"userId"`
	Username             string `gorm:"uniqueIndex;not null" json:"username"`
	Email                string `gorm:"uniqueIndex;not null" json:"email"`
	Password             string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FullName             string `gorm:"not null" json:"fullName"`
	PhoneNumber          string `json:"phoneNumber"`
	ProfilePicture       string `json:"profilePicture"`
	CoverPhoto           string `json:"coverPhoto"`
	Bio                  string `json:"bio"`
	OnlineStatus         bool   `gorm:"default:false" json:"onlineStatus"`
	PushToken            string `json:"-"`
	CreatedAt            int64  `json:"createdAt"`
	LastSeen             int64  `json:"lastSeen"`
	VanishModeEnabled    bool   `gorm:"default:false" json:"vanishModeEnabled"`
	StoryExpiryTimestamp int64  `json:"storyExpiryTimestamp,omitempty"`
}
