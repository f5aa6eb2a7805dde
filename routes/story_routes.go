package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vibegram/api-go/controllers"
)

func SetupStoryRoutes(api *gin.RouterGroup, storyController *controllers.StoryController, auth gin.HandlerFunc) {
	stories := api.Group("/stories")
	{
		stories.GET("", storyController.GetActiveStories)
		stories.GET("/user/:userId", storyController.GetStoriesByUserId)
		stories.GET("/:storyId", storyController.GetStoryById)

		stories.POST("", auth, storyController.CreateStory)
		stories.DELETE("/:storyId", auth, storyController.DeleteStory)
		stories.POST("/:storyId/view", auth, storyController.MarkStoryViewed)

		// On-demand sweep; the background ticker calls the same repository op.
		stories.DELETE("/cleanup/expired", auth, storyController.CleanupExpiredStories)
	}
}
