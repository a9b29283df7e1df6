package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound      = errors.New("activity not found")
	ErrNotActivityCreator    = errors.New("only the activity creator can perform this action")
	ErrActivityTitleRequired = errors.New("activity title is required")
)

// ActivityService handles activity business logic.
type ActivityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// CreateActivityInput represents input for creating an activity.
type CreateActivityInput struct {
	Title       string
	Description string
	Date        time.Time
	VillageID   uint64
	CreatorID   uint64
}

// CreateActivity creates a new activity scoped to a village.
func (s *ActivityService) CreateActivity(input CreateActivityInput) (*models.Activity, error) {
	if input.Title == "" {
		return nil, ErrActivityTitleRequired
	}

	activity := &models.Activity{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Status:      models.ActivityStatusUpcoming,
		VillageID:   input.VillageID,
		CreatorID:   input.CreatorID,
	}

	if err := s.activityRepo.Create(activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return s.activityRepo.FindByID(activity.ID, "Village", "Creator")
}

// GetActivity returns an activity with its tasks.
func (s *ActivityService) GetActivity(activityID uint64) (*models.Activity, error) {
	activity, err := s.activityRepo.FindByID(activityID, "Village", "Creator", "Tasks", "Tasks.Team", "Tasks.Report")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}
	return activity, nil
}

// ListActivities returns activities, most recent first.
func (s *ActivityService) ListActivities(villageID *uint64, page, pageSize int) ([]models.Activity, int64, error) {
	activities, total, err := s.activityRepo.List(villageID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, total, nil
}

// UpdateActivityInput represents input for updating an activity.
type UpdateActivityInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Status      *models.ActivityStatus
}

// UpdateActivity updates an activity. Creator only.
func (s *ActivityService) UpdateActivity(activityID, actorID uint64, input UpdateActivityInput) (*models.Activity, error) {
	activity, err := s.requireCreator(activityID, actorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrActivityTitleRequired
		}
		activity.Title = *input.Title
	}
	if input.Description != nil {
		activity.Description = *input.Description
	}
	if input.Date != nil {
		activity.Date = *input.Date
	}
	if input.Status != nil {
		activity.Status = *input.Status
	}

	if err := s.activityRepo.Update(activity); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	return s.activityRepo.FindByID(activity.ID, "Village", "Creator")
}

// DeleteActivity soft deletes an activity with its tasks and reports.
// Creator only.
func (s *ActivityService) DeleteActivity(activityID, actorID uint64) error {
	if _, err := s.requireCreator(activityID, actorID); err != nil {
		return err
	}

	if err := s.activityRepo.Delete(activityID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

func (s *ActivityService) requireCreator(activityID, actorID uint64) (*models.Activity, error) {
	activity, err := s.activityRepo.FindByID(activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	if activity.CreatorID != actorID {
		return nil, ErrNotActivityCreator
	}
	return activity, nil
}
