package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/constants"
	apierrors "github.com/umuganda/community-activity-api/internal/errors"
	"github.com/umuganda/community-activity-api/internal/middleware"
	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/services"
)

// ReportHandler coordinates completion report HTTP handlers.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// SubmitReport files the one-time completion report for a task and records
// the actual figures observed in the field.
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	task := taskInterface.(models.Task)

	type SubmitReportRequest struct {
		Comment               string   `json:"comment" binding:"required"`
		Challenges            string   `json:"challenges"`
		Materials             []string `json:"materials"`
		EvidenceURLs          []string `json:"evidence_urls"`
		AttendeeIDs           []uint64 `json:"attendee_ids"`
		ActualCost            int64    `json:"actual_cost"`
		ActualParticipants    int      `json:"actual_participants"`
		ActualFinancialImpact int64    `json:"actual_financial_impact"`
	}

	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.SubmitReport(services.SubmitReportInput{
		TaskID:                task.ID,
		AuthorID:              userID,
		Comment:               req.Comment,
		Challenges:            req.Challenges,
		Materials:             req.Materials,
		EvidenceURLs:          req.EvidenceURLs,
		AttendeeIDs:           req.AttendeeIDs,
		ActualCost:            req.ActualCost,
		ActualParticipants:    req.ActualParticipants,
		ActualFinancialImpact: req.ActualFinancialImpact,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetReportForTask returns the canonical report of a task.
// Access is already verified by RequireTaskAccess middleware.
func (h *ReportHandler) GetReportForTask(c *gin.Context) {
	taskInterface, exists := c.Get("task")
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	task := taskInterface.(models.Task)

	report, err := h.reportService.GetReportForTask(task.ID)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetReport returns a report by ID with its attendees.
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.GetReport(reportID)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DeleteReport removes a report. Author or activity creator only.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid report ID")
		return
	}

	if err := h.reportService.DeleteReport(reportID, userID); err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report deleted successfully",
	})
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTooManyEvidenceURLs):
		apierrors.BadRequest(c, fmt.Sprintf("A report can carry at most %d evidence attachments", constants.MaxEvidenceURLs))
	case errors.Is(err, services.ErrInvalidAttendee),
		errors.Is(err, services.ErrNegativeActuals):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrReportAlreadyFiled):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrReportAccessDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
