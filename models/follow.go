package models

// The social graph is kept as two independent edge tables plus a block
// list. Writes maintain followers and following together in one
// transaction; reads consult each table on its own.

type FollowerEdge struct {
	UserID     string `gorm:"primaryKey" json:"userId"`
	FollowerID string `gorm:"primaryKey" json:"followerId"`
	CreatedAt  int64  `json:"createdAt"`
}

func (FollowerEdge) TableName() string { return "followers" }

type FollowingEdge struct {
	UserID      string `gorm:"primaryKey" json:"userId"`
	FollowingID string `gorm:"primaryKey" json:"followingId"`
	CreatedAt   int64  `json:"createdAt"`
}

func (FollowingEdge) TableName() string { return "following" }

type BlockedEdge struct {
	UserID    string `gorm:"primaryKey" json:"userId"`
	BlockedID string `gorm:"primaryKey" json:"blockedId"`
	CreatedAt int64  `json:"createdAt"`
}

func (BlockedEdge) TableName() string { return "blocked_users" }
