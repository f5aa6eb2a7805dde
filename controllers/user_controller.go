package controllers

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/models"
	"github.com/vibegram/api-go/repository"
	"github.com/vibegram/api-go/utils"
)

type UserController struct {
	Users *repository.UserRepository
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Users: repository.NewUserRepository(db)}
}

type UpdateProfileRequest struct {
	FullName       *string `json:"fullName"`
	Username       *string `json:"username"`
	PhoneNumber    *string `json:"phoneNumber"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
	CoverPhoto     *string `json:"coverPhoto"`
}

type SyncRequest struct {
	UserData struct {
		UserID            string `json:"userId" binding:"required"`
		Username          string `json:"username"`
		FullName          string `json:"fullName"`
		PhoneNumber       string `json:"phoneNumber"`
		ProfilePicture    string `json:"profilePicture"`
		CoverPhoto        string `json:"coverPhoto"`
		Bio               string `json:"bio"`
		OnlineStatus      bool   `json:"onlineStatus"`
		PushToken         string `json:"pushToken"`
		LastSeen          int64  `json:"lastSeen"`
		VanishModeEnabled bool   `json:"vanishModeEnabled"`
	} `json:"userData" binding:"required"`
}

// GetUserProfile returns the public profile with follower/following
// counts. The two counts are independent reads and are fetched
// concurrently.
func (uc *UserController) GetUserProfile(c *gin.Context) {
	userID := c.Param("userId")

	user, err := uc.Users.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var (
		wg                      sync.WaitGroup
		followers, following    int64
		followersErr, followErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		followers, followersErr = uc.Users.FollowersCount(userID)
	}()
	go func() {
		defer wg.Done()
		following, followErr = uc.Users.FollowingCount(userID)
	}()
	wg.Wait()

	if followersErr != nil || followErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers/following counts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":         user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"fullName":       user.FullName,
		"phoneNumber":    user.PhoneNumber,
		"profilePicture": user.ProfilePicture,
		"coverPhoto":     user.CoverPhoto,
		"bio":            user.Bio,
		"onlineStatus":   user.OnlineStatus,
		"createdAt":      user.CreatedAt,
		"lastSeen":       user.LastSeen,
		"followersCount": followers,
		"followingCount": following,
	})
}

func (uc *UserController) UpdateUserProfile(c *gin.Context) {
	caller := utils.GetUser(c)
	if caller.UserID != c.Param("userId") {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := repository.UserUpdate{
		FullName:       req.FullName,
		Username:       req.Username,
		PhoneNumber:    req.PhoneNumber,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		CoverPhoto:     req.CoverPhoto,
	}
	if err := uc.Users.Update(caller.UserID, upd); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// SyncUserData overwrites the caller's mutable profile with the offline
// client's copy.
func (uc *UserController) SyncUserData(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user data"})
		return
	}

	caller := utils.GetUser(c)
	if caller.UserID != req.UserData.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only sync your own data"})
		return
	}

	user := models.User{
		ID:                req.UserData.UserID,
		Username:          req.UserData.Username,
		FullName:          req.UserData.FullName,
		PhoneNumber:       req.UserData.PhoneNumber,
		ProfilePicture:    req.UserData.ProfilePicture,
		CoverPhoto:        req.UserData.CoverPhoto,
		Bio:               req.UserData.Bio,
		OnlineStatus:      req.UserData.OnlineStatus,
		PushToken:         req.UserData.PushToken,
		LastSeen:          req.UserData.LastSeen,
		VanishModeEnabled: req.UserData.VanishModeEnabled,
	}
	if err := uc.Users.Sync(&user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User data synced successfully"})
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	profiles, err := uc.Users.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (uc *UserController) SearchUsers(c *gin.Context) {
	term := strings.TrimSpace(c.Query("username"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
		return
	}

	profiles, err := uc.Users.SearchByUsername(term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (uc *UserController) GetUserFollowers(c *gin.Context) {
	followers, err := uc.Users.Followers(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (uc *UserController) GetUserFollowing(c *gin.Context) {
	following, err := uc.Users.Following(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, following)
}

func (uc *UserController) FollowUser(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := uc.Users.Follow(caller.UserID, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully followed user"})
}

func (uc *UserController) UnfollowUser(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := uc.Users.Unfollow(caller.UserID, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

func (uc *UserController) BlockUser(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := uc.Users.Block(caller.UserID, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

func (uc *UserController) UnblockUser(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := uc.Users.Unblock(caller.UserID, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}
