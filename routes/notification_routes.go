package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vibegram/api-go/controllers"
)

func SetupNotificationRoutes(api *gin.RouterGroup, notificationController *controllers.NotificationController, auth gin.HandlerFunc) {
	notifications := api.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.POST("/send", notificationController.SendPushNotification)
		notifications.POST("/token", notificationController.UpdatePushToken)
	}
}
