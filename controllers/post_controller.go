package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/models"
	"github.com/vibegram/api-go/repository"
	"github.com/vibegram/api-go/utils"
)

type PostController struct {
	Posts *repository.PostRepository
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{Posts: repository.NewPostRepository(db)}
}

type CreatePostRequest struct {
	PostID       string `json:"postId"`
	PostImageUrl string `json:"postImageUrl"`
	Caption      string `json:"caption" binding:"required"`
}

type UpdatePostRequest struct {
	Caption      *string `json:"caption"`
	PostImageUrl *string `json:"postImageUrl"`
}

type AddCommentRequest struct {
	CommentID string `json:"commentId"`
	Text      string `json:"text" binding:"required"`
}

func (pc *PostController) CreatePost(c *gin.Context) {
	caller := utils.GetUser(c)
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postID := req.PostID
	if postID == "" {
		postID = uuid.NewString()
	}

	post := models.Post{
		ID:               postID,
		UserID:           caller.UserID,
		Username:         caller.Username,
		UserProfileImage: caller.ProfilePicture,
		PostImageUrl:     req.PostImageUrl,
		Caption:          req.Caption,
		Timestamp:        time.Now().UnixMilli(),
	}

	if err := pc.Posts.Create(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (pc *PostController) GetAllPosts(c *gin.Context) {
	posts, err := pc.Posts.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPostById returns the post with its full likes and comments lists.
// The two lists are independent reads and are fetched concurrently.
func (pc *PostController) GetPostById(c *gin.Context) {
	postID := c.Param("postId")

	post, err := pc.Posts.FindByID(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var (
		wg                 sync.WaitGroup
		likes              []models.Like
		comments           []models.Comment
		likesErr, commsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		likes, likesErr = pc.Posts.Likes(postID)
	}()
	go func() {
		defer wg.Done()
		comments, commsErr = pc.Posts.Comments(postID)
	}()
	wg.Wait()

	if likesErr != nil || commsErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"postId":           post.ID,
		"userId":           post.UserID,
		"username":         post.Username,
		"userProfileImage": post.UserProfileImage,
		"postImageUrl":     post.PostImageUrl,
		"caption":          post.Caption,
		"timestamp":        post.Timestamp,
		"likes":            likes,
		"comments":         comments,
		"likesCount":       len(likes),
		"commentsCount":    len(comments),
	})
}

func (pc *PostController) GetPostsByUserId(c *gin.Context) {
	posts, err := pc.Posts.ByUser(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	caller := utils.GetUser(c)
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := repository.PostUpdate{Caption: req.Caption, PostImageUrl: req.PostImageUrl}
	if err := pc.Posts.Update(c.Param("postId"), caller.UserID, upd); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := pc.Posts.Delete(c.Param("postId"), caller.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (pc *PostController) LikePost(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := pc.Posts.AddLike(c.Param("postId"), caller.UserID, time.Now().UnixMilli()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked successfully"})
}

func (pc *PostController) UnlikePost(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := pc.Posts.RemoveLike(c.Param("postId"), caller.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post unliked successfully"})
}

func (pc *PostController) AddComment(c *gin.Context) {
	caller := utils.GetUser(c)
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commentID := req.CommentID
	if commentID == "" {
		commentID = uuid.NewString()
	}

	comment := models.Comment{
		ID:               commentID,
		PostID:           c.Param("postId"),
		UserID:           caller.UserID,
		Username:         caller.Username,
		UserProfileImage: caller.ProfilePicture,
		Text:             req.Text,
		Timestamp:        time.Now().UnixMilli(),
	}

	if err := pc.Posts.AddComment(&comment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func (pc *PostController) DeleteComment(c *gin.Context) {
	caller := utils.GetUser(c)
	if err := pc.Posts.DeleteComment(c.Param("commentId"), caller.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
