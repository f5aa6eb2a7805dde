package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/config"
	"github.com/vibegram/api-go/repository"
	"github.com/vibegram/api-go/utils"
)

const oneSignalURL = "https://onesignal.com/api/v1/notifications"

type NotificationController struct {
	Users  *repository.UserRepository
	Cfg    *config.Config
	Client *http.Client
}

func NewNotificationController(db *gorm.DB, cfg *config.Config) *NotificationController {
	return &NotificationController{
		Users:  repository.NewUserRepository(db),
		Cfg:    cfg,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type SendNotificationRequest struct {
	ReceiverID string                 `json:"receiverId" binding:"required"`
	Title      string                 `json:"title" binding:"required"`
	Message    string                 `json:"message" binding:"required"`
	Data       map[string]interface{} `json:"data"`
}

type UpdatePushTokenRequest struct {
	PushToken string `json:"pushToken" binding:"required"`
}

// SendPushNotification delivers through OneSignal. A delivery failure
// never touches local state; it is reported to the caller as a 500.
func (nc *NotificationController) SendPushNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiverId, title, and message are required"})
		return
	}

	receiver, err := nc.Users.FindByID(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if receiver == nil || receiver.PushToken == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found or has no push token"})
		return
	}

	payload := map[string]interface{}{
		"app_id":                        nc.Cfg.OneSignal.AppID,
		"include_external_user_ids":     []string{req.ReceiverID},
		"headings":                      map[string]string{"en": req.Title},
		"contents":                      map[string]string{"en": req.Message},
		"data":                          req.Data,
		"channel_for_external_user_ids": "push",
	}
	if payload["data"] == nil {
		payload["data"] = map[string]interface{}{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, oneSignalURL, bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+nc.Cfg.OneSignal.APIKey)

	resp, err := nc.Client.Do(httpReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to send push notification: %v", err)})
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode push provider response"})
		return
	}
	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "push provider rejected the notification", "details": result})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

func (nc *NotificationController) UpdatePushToken(c *gin.Context) {
	caller := utils.GetUser(c)
	var req UpdatePushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Push token is required"})
		return
	}

	if err := nc.Users.UpdatePushToken(caller.UserID, req.PushToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
