package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/models"
	"github.com/vibegram/api-go/repository"
	"github.com/vibegram/api-go/utils"
)

type StoryController struct {
	Stories *repository.StoryRepository
}

func NewStoryController(db *gorm.DB) *StoryController {
	return &StoryController{Stories: repository.NewStoryRepository(db)}
}

type CreateStoryRequest struct {
	StoryID       string `json:"storyId"`
	StoryImageUrl string `json:"storyImageUrl" binding:"required"`
	Caption       string `json:"caption"`
}

func (sc *StoryController) CreateStory(c *gin.Context) {
	caller := utils.GetUser(c)
	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storyID := req.StoryID
	if storyID == "" {
		storyID = uuid.NewString()
	}

	story := models.Story{
		ID:               storyID,
		UserID:           caller.UserID,
		Username:         caller.Username,
		UserProfileImage: caller.ProfilePicture,
		StoryImageUrl:    req.StoryImageUrl,
		Caption:          req.Caption,
		Timestamp:        time.Now().UnixMilli(),
	}

	if err := sc.Stories.Create(&story); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Story created successfully",
		"story":   story,
	})
}

func (sc *StoryController) GetActiveStories(c *gin.Context) {
	stories, err := sc.Stories.Active(time.Now().UnixMilli())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stories)
}

// GetStoryById returns an active story with its viewers. Expired
// stories report the same 404 status as missing ones: from the caller's
// perspective an expired story no longer exists, even before the sweep
// has physically removed it.
func (sc *StoryController) GetStoryById(c *gin.Context) {
	storyID := c.Param("storyId")

	story, err := sc.Stories.FindByID(storyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if story == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if !story.Active(time.Now().UnixMilli()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story has expired"})
		return
	}

	viewers, err := sc.Stories.Viewers(storyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"storyId":          story.ID,
		"userId":           story.UserID,
		"username":         story.Username,
		"userProfileImage": story.UserProfileImage,
		"storyImageUrl":    story.StoryImageUrl,
		"caption":          story.Caption,
		"timestamp":        story.Timestamp,
		"expiryTimestamp":  story.ExpiryTimestamp,
		"viewers":          viewers,
	})
}

func (sc *StoryController) GetStoriesByUserId(c *gin.Context) {
	stories, err := sc.Stories.ActiveByUser(c.Param("userId"), time.Now().UnixMilli())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (sc *StoryController) DeleteStory(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := sc.Stories.Delete(c.Param("storyId"), caller.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Story deleted successfully"})
}

// MarkStoryViewed records the caller as a viewer. Viewing twice is a
// silent success; viewing an expired story is a 404.
func (sc *StoryController) MarkStoryViewed(c *gin.Context) {
	caller := utils.GetUser(c)
	storyID := c.Param("storyId")
	now := time.Now().UnixMilli()

	story, err := sc.Stories.FindByID(storyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if story == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}
	if !story.Active(now) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story has expired"})
		return
	}

	if err := sc.Stories.AddViewer(storyID, caller.UserID, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story marked as viewed"})
}

func (sc *StoryController) CleanupExpiredStories(c *gin.Context) {
	deleted, err := sc.Stories.CleanupExpired(time.Now().UnixMilli())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Expired stories cleaned up",
		"deletedCount": deleted,
	})
}
