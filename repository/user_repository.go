package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vibegram/api-go/models"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Profile is the public projection of a user row: the password hash,
// push token and vanish-mode bookkeeping never leave the repository.
type Profile struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture"`
	CoverPhoto     string `json:"coverPhoto"`
	Bio            string `json:"bio"`
	OnlineStatus   bool   `json:"onlineStatus"`
	CreatedAt      int64  `json:"createdAt"`
	LastSeen       int64  `json:"lastSeen"`
}

// FollowEntry is one row of a followers/following listing.
type FollowEntry struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
	FollowedAt     int64  `json:"followedAt"`
}

// UserUpdate applies only the fields that are present. This replaces
// field-list/value-list SQL building with a structured partial update.
type UserUpdate struct {
	FullName       *string
	Username       *string
	PhoneNumber    *string
	Bio            *string
	ProfilePicture *string
	CoverPhoto     *string
}

func (u UserUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.FullName != nil {
		m["full_name"] = *u.FullName
	}
	if u.Username != nil {
		m["username"] = *u.Username
	}
	if u.PhoneNumber != nil {
		m["phone_number"] = *u.PhoneNumber
	}
	if u.Bio != nil {
		m["bio"] = *u.Bio
	}
	if u.ProfilePicture != nil {
		m["profile_picture"] = *u.ProfilePicture
	}
	if u.CoverPhoto != nil {
		m["cover_photo"] = *u.CoverPhoto
	}
	return m
}

// FindByEmail returns (nil, nil) when no user matches.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	return r.findOne("email = ?", email)
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	return r.findOne("username = ?", username)
}

func (r *UserRepository) FindByID(id string) (*models.User, error) {
	return r.findOne("id = ?", id)
}

func (r *UserRepository) findOne(query string, arg string) (*models.User, error) {
	var user models.User
	err := r.DB.Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user. The unique indexes on username and email
// backstop the handler-level pre-checks against concurrent registration.
func (r *UserRepository) Create(user *models.User) error {
	if err := r.DB.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email already exists: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

// Update applies a partial update. An empty update is rejected before
// touching the database.
func (r *UserRepository) Update(id string, upd UserUpdate) error {
	changes := upd.changes()
	if len(changes) == 0 {
		return fmt.Errorf("no fields to update: %w", ErrValidation)
	}

	res := r.DB.Model(&models.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("username already taken: %w", ErrDuplicate)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// Sync overwrites the full mutable profile in one statement, for the
// offline client's state push.
func (r *UserRepository) Sync(user *models.User) error {
	res := r.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username":            user.Username,
		"full_name":           user.FullName,
		"phone_number":        user.PhoneNumber,
		"profile_picture":     user.ProfilePicture,
		"cover_photo":         user.CoverPhoto,
		"bio":                 user.Bio,
		"online_status":       user.OnlineStatus,
		"push_token":          user.PushToken,
		"last_seen":           user.LastSeen,
		"vanish_mode_enabled": user.VanishModeEnabled,
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("username already taken: %w", ErrDuplicate)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastSeen(id string, ts int64) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).Update("last_seen", ts).Error
}

func (r *UserRepository) UpdatePushToken(id, token string) error {
	res := r.DB.Model(&models.User{}).Where("id = ?", id).Update("push_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *UserRepository) FollowersCount(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.FollowerEdge{}).Where("user_id = ?", id).Count(&count).Error
	return count, err
}

func (r *UserRepository) FollowingCount(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.FollowingEdge{}).Where("user_id = ?", id).Count(&count).Error
	return count, err
}

func (r *UserRepository) Followers(id string) ([]FollowEntry, error) {
	var entries []FollowEntry
	err := r.DB.Model(&models.FollowerEdge{}).
		Select("users.id as user_id, users.username, users.full_name, users.profile_picture, followers.created_at as followed_at").
		Joins("JOIN users ON users.id = followers.follower_id").
		Where("followers.user_id = ?", id).
		Order("followers.created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *UserRepository) Following(id string) ([]FollowEntry, error) {
	var entries []FollowEntry
	err := r.DB.Model(&models.FollowingEdge{}).
		Select("users.id as user_id, users.username, users.full_name, users.profile_picture, following.created_at as followed_at").
		Joins("JOIN users ON users.id = following.following_id").
		Where("following.user_id = ?", id).
		Order("following.created_at DESC").
		Find(&entries).Error
	return entries, err
}

// Follow records userID following targetID. Both edge tables are
// written in one transaction so the graph cannot end up half-updated.
func (r *UserRepository) Follow(userID, targetID string) error {
	if userID == targetID {
		return fmt.Errorf("cannot follow yourself: %w", ErrValidation)
	}

	target, err := r.FindByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("user %s: %w", targetID, ErrNotFound)
	}

	now := time.Now().UnixMilli()
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.FollowerEdge{UserID: targetID, FollowerID: userID, CreatedAt: now}).Error; err != nil {
			return err
		}
		return tx.Create(&models.FollowingEdge{UserID: userID, FollowingID: targetID, CreatedAt: now}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("already following: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *UserRepository) Unfollow(userID, targetID string) error {
	var removed int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND follower_id = ?", targetID, userID).Delete(&models.FollowerEdge{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		res = tx.Where("user_id = ? AND following_id = ?", userID, targetID).Delete(&models.FollowingEdge{})
		if res.Error != nil {
			return res.Error
		}
		removed += res.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("follow edge: %w", ErrNotFound)
	}
	return nil
}

func (r *UserRepository) Block(userID, targetID string) error {
	if userID == targetID {
		return fmt.Errorf("cannot block yourself: %w", ErrValidation)
	}

	target, err := r.FindByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("user %s: %w", targetID, ErrNotFound)
	}

	edge := models.BlockedEdge{UserID: userID, BlockedID: targetID, CreatedAt: time.Now().UnixMilli()}
	if err := r.DB.Create(&edge).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("already blocked: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *UserRepository) Unblock(userID, targetID string) error {
	res := r.DB.Where("user_id = ? AND blocked_id = ?", userID, targetID).Delete(&models.BlockedEdge{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("block edge: %w", ErrNotFound)
	}
	return nil
}

// All lists every user's public profile.
func (r *UserRepository) All() ([]Profile, error) {
	return r.profiles(r.DB.Model(&models.User{}))
}

// SearchByUsername matches usernames containing the term.
func (r *UserRepository) SearchByUsername(term string) ([]Profile, error) {
	return r.profiles(r.DB.Model(&models.User{}).Where("username LIKE ?", "%"+term+"%"))
}

func (r *UserRepository) profiles(q *gorm.DB) ([]Profile, error) {
	var profiles []Profile
	err := q.Select("id as user_id, username, email, full_name, phone_number, profile_picture, cover_photo, bio, online_status, created_at, last_seen").
		Order("username ASC").
		Find(&profiles).Error
	return profiles, err
}
