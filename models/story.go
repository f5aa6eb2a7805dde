package models

import "time"

// StoryTTL is how long a story stays visible after creation. The expiry
// is fixed at creation time and never extended.
const StoryTTL = 24 * time.Hour

// Story has an implicit two-state lifecycle, Active then Expired. There
// is no stored flag: the state is derived from (now, ExpiryTimestamp) at
// every read path, and a separate cleanup sweep deletes expired rows.
type Story struct {
	ID               string `gorm:"primaryKey" json:"storyId"`
	UserID           string `gorm:"not null;index" json:"userId"`
	Username         string `gorm:"not null" json:"username"`
	UserProfileImage string `json:"userProfileImage"`
	StoryImageUrl    string `gorm:"not null" json:"storyImageUrl"`
	Caption          string `json:"caption"`
	Timestamp        int64  `gorm:"not null;index" json:"timestamp"`
	ExpiryTimestamp  int64  `gorm:"not null;index" json:"expiryTimestamp"`
}

// Active reports whether the story is still visible at now (millis).
func (s *Story) Active(now int64) bool {
	return s.ExpiryTimestamp > now
}

// StoryExpiry computes the expiry for a story created at ts (millis).
func StoryExpiry(ts int64) int64 {
	return ts + StoryTTL.Milliseconds()
}
