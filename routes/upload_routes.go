package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vibegram/api-go/controllers"
)

func SetupUploadRoutes(api *gin.RouterGroup, uploadController *controllers.UploadController, auth gin.HandlerFunc) {
	uploads := api.Group("/uploads")
	uploads.Use(auth)
	{
		uploads.POST("/presign", uploadController.GetPresignedURL)
		uploads.POST("/confirm", uploadController.ConfirmUpload)
		uploads.DELETE("/:key", uploadController.DeleteFile)
	}
}
