package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibegram/api-go/models"
)

type StoryRepository struct {
	DB *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{DB: db}
}

// StoryWithViewerCount annotates a story with how many distinct users
// have viewed it.
type StoryWithViewerCount struct {
	models.Story
	ViewersCount int64 `json:"viewersCount"`
}

const storyViewersSelect = `
	stories.*,
	(SELECT COUNT(*) FROM story_viewers WHERE story_viewers.story_id = stories.id) as viewers_count
`

// Create stores the story with its expiry fixed at creation. The expiry
// is derived from the story's own timestamp and is never extended.
func (r *StoryRepository) Create(story *models.Story) error {
	story.ExpiryTimestamp = models.StoryExpiry(story.Timestamp)
	return r.DB.Create(story).Error
}

// FindByID returns the row regardless of expiry; callers apply the
// Active check so an expired story can be reported distinctly from a
// missing one.
func (r *StoryRepository) FindByID(id string) (*models.Story, error) {
	var story models.Story
	err := r.DB.Where("id = ?", id).First(&story).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// Active lists every story still visible at now, newest first. The
// expiry predicate is applied here, not assumed from cleanup: the sweep
// may not have run yet.
func (r *StoryRepository) Active(now int64) ([]StoryWithViewerCount, error) {
	var stories []StoryWithViewerCount
	err := r.DB.Model(&models.Story{}).
		Select(storyViewersSelect).
		Where("stories.expiry_timestamp > ?", now).
		Order("stories.timestamp DESC").
		Find(&stories).Error
	return stories, err
}

func (r *StoryRepository) ActiveByUser(userID string, now int64) ([]StoryWithViewerCount, error) {
	var stories []StoryWithViewerCount
	err := r.DB.Model(&models.Story{}).
		Select(storyViewersSelect).
		Where("stories.user_id = ? AND stories.expiry_timestamp > ?", userID, now).
		Order("stories.timestamp DESC").
		Find(&stories).Error
	return stories, err
}

// Delete removes the story and its viewer rows when requesterID owns it.
func (r *StoryRepository) Delete(storyID, requesterID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var story models.Story
		if err := tx.Where("id = ?", storyID).First(&story).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("story %s: %w", storyID, ErrNotFound)
			}
			return err
		}
		if story.UserID != requesterID {
			return fmt.Errorf("story %s: %w", storyID, ErrForbidden)
		}

		if err := tx.Where("story_id = ?", storyID).Delete(&models.StoryViewer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&story).Error
	})
}

// AddViewer records that userID viewed the story at ts. Re-viewing is a
// no-op: the duplicate insert is dropped at the constraint.
func (r *StoryRepository) AddViewer(storyID, userID string, ts int64) error {
	viewer := models.StoryViewer{StoryID: storyID, UserID: userID, Timestamp: ts}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&viewer).Error
}

// Viewers lists the story's viewers in view order.
func (r *StoryRepository) Viewers(storyID string) ([]models.StoryViewer, error) {
	var viewers []models.StoryViewer
	err := r.DB.Where("story_id = ?", storyID).Order("timestamp ASC").Find(&viewers).Error
	return viewers, err
}

// CleanupExpired deletes every story with expiry_timestamp <= now and
// cascades to its viewer rows. The sweep is idempotent; running it with
// nothing expired removes nothing.
func (r *StoryRepository) CleanupExpired(now int64) (int64, error) {
	var removed int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("story_id IN (?)",
			tx.Model(&models.Story{}).Select("id").Where("expiry_timestamp <= ?", now),
		).Delete(&models.StoryViewer{}).Error
		if err != nil {
			return err
		}

		res := tx.Where("expiry_timestamp <= ?", now).Delete(&models.Story{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}
