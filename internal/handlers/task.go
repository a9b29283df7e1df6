package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/umuganda/community-activity-api/internal/errors"
	"github.com/umuganda/community-activity-api/internal/middleware"
	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"github.com/umuganda/community-activity-api/internal/services"
	"github.com/umuganda/community-activity-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks matching the query filters.
// Can filter by activity_id, team_id, status and created_from/created_to.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if raw := c.Query("activity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid activity_id")
			return
		}
		filter.ActivityID = &id
	}
	if raw := c.Query("team_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid team_id")
			return
		}
		filter.TeamID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("created_from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedTo = &t
		}
	}

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateTask plans a new task under an activity. Activity creator only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title                   string `json:"title" binding:"required"`
		Description             string `json:"description"`
		ActivityID              uint64 `json:"activity_id" binding:"required"`
		TeamID                  uint64 `json:"team_id" binding:"required"`
		EstimatedCost           int64  `json:"estimated_cost"`
		ExpectedParticipants    int    `json:"expected_participants"`
		ExpectedFinancialImpact int64  `json:"expected_financial_impact"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:                   req.Title,
		Description:             req.Description,
		ActivityID:              req.ActivityID,
		TeamID:                  req.TeamID,
		CreatorID:               userID,
		EstimatedCost:           req.EstimatedCost,
		ExpectedParticipants:    req.ExpectedParticipants,
		ExpectedFinancialImpact: req.ExpectedFinancialImpact,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask returns a task with its report and attendees.
// Access is already verified by RequireTaskAccess middleware.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	task := taskInterface.(models.Task)

	detailed, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailed)
}

// UpdateTask updates a task. Activity creator or team member only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title                   *string            `json:"title"`
		Description             *string            `json:"description"`
		Status                  *models.TaskStatus `json:"status"`
		EstimatedCost           *int64             `json:"estimated_cost"`
		ActualCost              *int64             `json:"actual_cost"`
		ExpectedParticipants    *int               `json:"expected_participants"`
		ActualParticipants      *int               `json:"actual_participants"`
		ExpectedFinancialImpact *int64             `json:"expected_financial_impact"`
		ActualFinancialImpact   *int64             `json:"actual_financial_impact"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, userID, services.UpdateTaskInput{
		Title:                   req.Title,
		Description:             req.Description,
		Status:                  req.Status,
		EstimatedCost:           req.EstimatedCost,
		ActualCost:              req.ActualCost,
		ExpectedParticipants:    req.ExpectedParticipants,
		ActualParticipants:      req.ActualParticipants,
		ExpectedFinancialImpact: req.ExpectedFinancialImpact,
		ActualFinancialImpact:   req.ActualFinancialImpact,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task. Activity creator only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrTaskTitleEmpty),
		errors.Is(err, services.ErrNegativeEstimate),
		errors.Is(err, services.ErrNegativeActuals):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrActivityNotFound),
		errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskPermissionDenied),
		errors.Is(err, services.ErrNotActivityCreator):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
