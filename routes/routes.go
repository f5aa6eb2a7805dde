package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/config"
	"github.com/vibegram/api-go/controllers"
	"github.com/vibegram/api-go/middleware"
)

// SetupRoutes wires every resource group under /api. Reads on posts and
// stories are public; everything that mutates or exposes private state
// sits behind the bearer-token middleware.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authController := controllers.NewAuthController(db, cfg)
	userController := controllers.NewUserController(db)
	postController := controllers.NewPostController(db)
	storyController := controllers.NewStoryController(db)
	notificationController := controllers.NewNotificationController(db, cfg)
	uploadController := controllers.NewUploadController(cfg)

	api := r.Group("/api")
	auth := middleware.AuthMiddleware(db, cfg.JWTSecret)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
	}

	SetupUserRoutes(api, userController, auth)
	SetupPostRoutes(api, postController, auth)
	SetupStoryRoutes(api, storyController, auth)
	SetupNotificationRoutes(api, notificationController, auth)
	SetupUploadRoutes(api, uploadController, auth)
}
