package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vibegram/api-go/models"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// PostWithCounts annotates a post with its like/comment counts, computed
// per row by correlated subqueries at list time.
type PostWithCounts struct {
	models.Post
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
}

// PostUpdate applies only the fields that are present.
type PostUpdate struct {
	Caption      *string
	PostImageUrl *string
}

func (u PostUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.Caption != nil {
		m["caption"] = *u.Caption
	}
	if u.PostImageUrl != nil {
		m["post_image_url"] = *u.PostImageUrl
	}
	return m
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.DB.Create(post).Error
}

// FindByID returns (nil, nil) when no post matches.
func (r *PostRepository) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.DB.Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

const postCountsSelect = `
	posts.*,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count
`

// All lists every post, newest first.
func (r *PostRepository) All() ([]PostWithCounts, error) {
	var posts []PostWithCounts
	err := r.DB.Model(&models.Post{}).
		Select(postCountsSelect).
		Order("posts.timestamp DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) ByUser(userID string) ([]PostWithCounts, error) {
	var posts []PostWithCounts
	err := r.DB.Model(&models.Post{}).
		Select(postCountsSelect).
		Where("posts.user_id = ?", userID).
		Order("posts.timestamp DESC").
		Find(&posts).Error
	return posts, err
}

// Update mutates the post only when requesterID owns it. The ownership
// check and the write run in the same transaction, so a concurrent
// delete or transfer cannot slip between them.
func (r *PostRepository) Update(postID, requesterID string, upd PostUpdate) error {
	changes := upd.changes()
	if len(changes) == 0 {
		return fmt.Errorf("no fields to update: %w", ErrValidation)
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post %s: %w", postID, ErrNotFound)
			}
			return err
		}
		if post.UserID != requesterID {
			return fmt.Errorf("post %s: %w", postID, ErrForbidden)
		}
		return tx.Model(&post).Updates(changes).Error
	})
}

// Delete removes the post and its dependent rows. Likes and comments go
// first so the cascade holds even without foreign-key support.
func (r *PostRepository) Delete(postID, requesterID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post %s: %w", postID, ErrNotFound)
			}
			return err
		}
		if post.UserID != requesterID {
			return fmt.Errorf("post %s: %w", postID, ErrForbidden)
		}

		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// AddLike records a like. A second like by the same user violates the
// (post, user) unique index and surfaces as ErrDuplicate.
func (r *PostRepository) AddLike(postID, userID string, ts int64) error {
	post, err := r.FindByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	like := models.Like{PostID: postID, UserID: userID, Timestamp: ts}
	if err := r.DB.Create(&like).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("already liked: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

// RemoveLike deletes the like; unliking a never-liked post is ErrNotFound.
func (r *PostRepository) RemoveLike(postID, userID string) error {
	res := r.DB.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like: %w", ErrNotFound)
	}
	return nil
}

func (r *PostRepository) Likes(postID string) ([]models.Like, error) {
	var likes []models.Like
	err := r.DB.Where("post_id = ?", postID).Order("timestamp ASC").Find(&likes).Error
	return likes, err
}

func (r *PostRepository) AddComment(comment *models.Comment) error {
	post, err := r.FindByID(comment.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %s: %w", comment.PostID, ErrNotFound)
	}
	return r.DB.Create(comment).Error
}

func (r *PostRepository) Comments(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB.Where("post_id = ?", postID).Order("timestamp ASC").Find(&comments).Error
	return comments, err
}

// DeleteComment removes the comment when requesterID wrote it, with the
// owner check inside the delete transaction.
func (r *PostRepository) DeleteComment(commentID, requesterID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Where("id = ?", commentID).First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
			}
			return err
		}
		if comment.UserID != requesterID {
			return fmt.Errorf("comment %s: %w", commentID, ErrForbidden)
		}
		return tx.Delete(&comment).Error
	})
}
