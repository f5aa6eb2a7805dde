package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vibegram/api-go/controllers"
)

func SetupPostRoutes(api *gin.RouterGroup, postController *controllers.PostController, auth gin.HandlerFunc) {
	posts := api.Group("/posts")
	{
		posts.GET("", postController.GetAllPosts)
		posts.GET("/user/:userId", postController.GetPostsByUserId)
		posts.GET("/:postId", postController.GetPostById)

		posts.POST("", auth, postController.CreatePost)
		posts.PUT("/:postId", auth, postController.UpdatePost)
		posts.DELETE("/:postId", auth, postController.DeletePost)

		posts.POST("/:postId/like", auth, postController.LikePost)
		posts.DELETE("/:postId/like", auth, postController.UnlikePost)

		posts.POST("/:postId/comments", auth, postController.AddComment)
		posts.DELETE("/comments/:commentId", auth, postController.DeleteComment)
	}
}
