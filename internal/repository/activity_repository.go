package repository

import (
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create creates a new activity
func (r *GormActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// FindByID finds an activity by ID with optional preloading
func (r *GormActivityRepository) FindByID(id uint64, preload ...string) (*models.Activity, error) {
	var activity models.Activity
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&activity, id).Error; err != nil {
		return nil, err
	}

	return &activity, nil
}

// List retrieves activities ordered by date descending
func (r *GormActivityRepository) List(villageID *uint64, page, pageSize int) ([]models.Activity, int64, error) {
	query := r.db.Model(&models.Activity{})
	if villageID != nil {
		query = query.Where("village_id = ?", *villageID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.
		Order("activities.date DESC").
		Scopes(database.Paginate(page, pageSize))

	var activities []models.Activity
	if err := listQuery.Preload("Village").Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

// ListWithTasks retrieves activities with the full task/report/attendee tree
// preloaded for batch analytics.
func (r *GormActivityRepository) ListWithTasks(villageID *uint64) ([]models.Activity, error) {
	query := r.db.Model(&models.Activity{})
	if villageID != nil {
		query = query.Where("village_id = ?", *villageID)
	}

	var activities []models.Activity
	err := query.
		Preload("Tasks").
		Preload("Tasks.Team").
		Preload("Tasks.Report").
		Preload("Tasks.Report.Attendees").
		Preload("Tasks.Report.Attendees.User").
		Order("activities.date DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// Update updates an activity
func (r *GormActivityRepository) Update(activity *models.Activity) error {
	return r.db.Save(activity).Error
}

// Delete soft deletes an activity and its tasks
func (r *GormActivityRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("activity_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Report{}).Error; err != nil {
				return err
			}
			if err := tx.Where("activity_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Activity{}, id).Error
	})
}
