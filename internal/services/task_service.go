package services

import (
	"errors"
	"fmt"

	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrTaskTitleRequired    = errors.New("title is required")
	ErrTaskTitleEmpty       = errors.New("title cannot be empty")
	ErrNegativeEstimate     = errors.New("estimates cannot be negative")
	ErrNegativeActuals      = errors.New("actual figures cannot be negative")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo     repository.TaskRepository
	activityRepo repository.ActivityRepository
	teamRepo     repository.TeamRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, activityRepo repository.ActivityRepository, teamRepo repository.TeamRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		teamRepo:     teamRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title                   string
	Description             string
	ActivityID              uint64
	TeamID                  uint64
	CreatorID               uint64
	EstimatedCost           int64
	ExpectedParticipants    int
	ExpectedFinancialImpact int64
}

// CreateTask creates a task under an activity. Only the activity creator can
// plan tasks.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}
	if input.EstimatedCost < 0 || input.ExpectedParticipants < 0 || input.ExpectedFinancialImpact < 0 {
		return nil, ErrNegativeEstimate
	}

	activity, err := s.activityRepo.FindByID(input.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}
	if activity.CreatorID != input.CreatorID {
		return nil, ErrNotActivityCreator
	}

	if _, err := s.teamRepo.FindByID(input.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	task := &models.Task{
		Title:                   input.Title,
		Description:             input.Description,
		Status:                  models.TaskStatusPending,
		ActivityID:              input.ActivityID,
		TeamID:                  input.TeamID,
		CreatorID:               input.CreatorID,
		EstimatedCost:           input.EstimatedCost,
		ExpectedParticipants:    input.ExpectedParticipants,
		ExpectedFinancialImpact: input.ExpectedFinancialImpact,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Activity", "Team")
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Activity", "Team", "Report", "Report.Attendees.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTaskInput represents input for updating a task.
type UpdateTaskInput struct {
	Title                   *string
	Description             *string
	Status                  *models.TaskStatus
	EstimatedCost           *int64
	ActualCost              *int64
	ExpectedParticipants    *int
	ActualParticipants      *int
	ExpectedFinancialImpact *int64
	ActualFinancialImpact   *int64
}

// UpdateTask updates a task. The actor must be the activity creator or a
// member of the owning team.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.requireTaskAccess(taskID, actorID)
	if err != nil {
		return nil, err
	}

	if negative(input.EstimatedCost) || negativeInt(input.ExpectedParticipants) || negative(input.ExpectedFinancialImpact) {
		return nil, ErrNegativeEstimate
	}
	if negative(input.ActualCost) || negativeInt(input.ActualParticipants) || negative(input.ActualFinancialImpact) {
		return nil, ErrNegativeActuals
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.EstimatedCost != nil {
		task.EstimatedCost = *input.EstimatedCost
	}
	if input.ActualCost != nil {
		task.ActualCost = *input.ActualCost
	}
	if input.ExpectedParticipants != nil {
		task.ExpectedParticipants = *input.ExpectedParticipants
	}
	if input.ActualParticipants != nil {
		task.ActualParticipants = *input.ActualParticipants
	}
	if input.ExpectedFinancialImpact != nil {
		task.ExpectedFinancialImpact = *input.ExpectedFinancialImpact
	}
	if input.ActualFinancialImpact != nil {
		task.ActualFinancialImpact = *input.ActualFinancialImpact
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Activity", "Team", "Report")
}

// DeleteTask soft deletes a task. Activity creator only.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID, "Activity")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.Activity.CreatorID != actorID {
		return ErrTaskPermissionDenied
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func negative(v *int64) bool {
	return v != nil && *v < 0
}

func negativeInt(v *int) bool {
	return v != nil && *v < 0
}

// requireTaskAccess loads a task and verifies the actor is the activity
// creator or a member of the owning team.
func (s *TaskService) requireTaskAccess(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Activity")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Activity.CreatorID == actorID {
		return task, nil
	}

	if _, err := s.teamRepo.FindMember(task.TeamID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskPermissionDenied
		}
		return nil, fmt.Errorf("failed to verify team membership: %w", err)
	}

	return task, nil
}
