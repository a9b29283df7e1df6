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
	"github.com/umuganda/community-activity-api/internal/services"
	"github.com/umuganda/community-activity-api/internal/utils"
)

// ActivityHandler coordinates activity HTTP handlers.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// ListActivities returns activities ordered by date descending.
// Can filter by village_id.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var villageID *uint64
	if raw := c.Query("village_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid village_id")
			return
		}
		villageID = &id
	}

	params := utils.GetPaginationParams(c)

	activities, total, err := h.activityService.ListActivities(villageID, params.Page, params.Limit)
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateActivity schedules a new activity in a village.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateActivityRequest struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		Date        time.Time `json:"date" binding:"required"`
		VillageID   uint64    `json:"village_id" binding:"required"`
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	activity, err := h.activityService.CreateActivity(services.CreateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		VillageID:   req.VillageID,
		CreatorID:   userID,
	})
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// GetActivity returns an activity with its tasks.
// The activity is already verified by RequireActivityAccess middleware.
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	activityInterface, exists := c.Get("activity")
	if !exists {
		apierrors.InternalError(c, "Activity not found in context")
		return
	}
	activity := activityInterface.(models.Activity)

	detailed, err := h.activityService.GetActivity(activity.ID)
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailed)
}

// UpdateActivity updates an activity. Creator only.
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	activityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid activity ID")
		return
	}

	type UpdateActivityRequest struct {
		Title       *string                `json:"title"`
		Description *string                `json:"description"`
		Date        *time.Time             `json:"date"`
		Status      *models.ActivityStatus `json:"status"`
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Status != nil && !validActivityStatus(*req.Status) {
		apierrors.BadRequest(c, "Invalid status")
		return
	}

	activity, err := h.activityService.UpdateActivity(activityID, userID, services.UpdateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Status:      req.Status,
	})
	if err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// DeleteActivity removes an activity with its tasks and reports. Creator only.
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	activityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid activity ID")
		return
	}

	if err := h.activityService.DeleteActivity(activityID, userID); err != nil {
		respondActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Activity deleted successfully",
	})
}

func validActivityStatus(status models.ActivityStatus) bool {
	switch status {
	case models.ActivityStatusUpcoming,
		models.ActivityStatusOngoing,
		models.ActivityStatusCompleted,
		models.ActivityStatusCancelled:
		return true
	}
	return false
}

func respondActivityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrActivityTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrActivityNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotActivityCreator):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
