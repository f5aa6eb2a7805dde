package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vibegram/api-go/controllers"
)

func SetupUserRoutes(api *gin.RouterGroup, userController *controllers.UserController, auth gin.HandlerFunc) {
	users := api.Group("/users")
	users.Use(auth)
	{
		users.GET("", userController.GetAllUsers)
		users.GET("/search", userController.SearchUsers)
		users.POST("/sync", userController.SyncUserData)
		users.GET("/:userId", userController.GetUserProfile)
		users.PUT("/:userId", userController.UpdateUserProfile)
		users.GET("/:userId/followers", userController.GetUserFollowers)
		users.GET("/:userId/following", userController.GetUserFollowing)
		users.POST("/:userId/follow", userController.FollowUser)
		users.DELETE("/:userId/follow", userController.UnfollowUser)
		users.POST("/:userId/block", userController.BlockUser)
		users.DELETE("/:userId/block", userController.UnblockUser)
	}
}
