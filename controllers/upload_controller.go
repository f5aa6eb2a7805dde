package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibegram/api-go/config"
	"github.com/vibegram/api-go/utils"
)

// UploadController hands out presigned R2 PUT URLs for the image slots
// the app stores: profile pictures, cover photos, post images and story
// images. Everything here is photos; there is no video surface.
type UploadController struct {
	R2Client *s3.Client
	R2Config *config.R2Config
}

var imageKinds = map[string]bool{
	"profile": true,
	"cover":   true,
	"post":    true,
	"story":   true,
}

func NewUploadController(cfg *config.Config) *UploadController {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			"",
		),
		Region: cfg.R2.Region,
	})

	return &UploadController{
		R2Client: client,
		R2Config: &cfg.R2,
	}
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=profile cover post story"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type ConfirmUploadRequest struct {
	Key string `json:"key" binding:"required"`
}

func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	caller := utils.GetUser(c)
	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image content type"})
		return
	}
	if req.FileSize > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := uc.generateFileKey(caller.UserID, req.Kind, req.FileName)

	uploadURL, err := uc.createPresignedURL(c.Request.Context(), key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, PresignedURLResponse{
		UploadURL: uploadURL,
		FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		Key:       key,
		ExpiresIn: 3600,
	})
}

// ConfirmUpload verifies the client actually put the object before the
// URL is written into a profile, post or story.
func (uc *UploadController) ConfirmUpload(c *gin.Context) {
	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := uc.R2Client.HeadObject(c.Request.Context(), &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(req.Key),
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in storage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":      req.Key,
		"fileUrl":  fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, req.Key),
		"fileSize": out.ContentLength,
	})
}

func (uc *UploadController) DeleteFile(c *gin.Context) {
	caller := utils.GetUser(c)
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !keyOwnedBy(key, caller.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	_, err := uc.R2Client.DeleteObject(c.Request.Context(), &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic":
		return true
	}
	return false
}

func (uc *UploadController) generateFileKey(userID, kind, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("uploads/%s/%s/%d_%s%s", kind, userID, time.Now().Unix(), uuid.NewString(), ext)
}

// keyOwnedBy checks the user segment of uploads/{kind}/{userID}/{file}.
func keyOwnedBy(key, userID string) bool {
	parts := strings.Split(key, "/")
	return len(parts) >= 4 && parts[0] == "uploads" && parts[2] == userID
}

func (uc *UploadController) createPresignedURL(ctx context.Context, key, contentType string) (string, error) {
	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
