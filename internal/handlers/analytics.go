package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/analytics"
	"github.com/umuganda/community-activity-api/internal/dto"
	apierrors "github.com/umuganda/community-activity-api/internal/errors"
	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"github.com/umuganda/community-activity-api/internal/services"
	"github.com/umuganda/community-activity-api/internal/utils"
)

// AnalyticsHandler exposes the read-only analytics surface.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	narrativeService *services.NarrativeService
}

// NewAnalyticsHandler creates a new AnalyticsHandler. The narrative service
// may be nil when no API key is configured.
func NewAnalyticsHandler(analyticsService *services.AnalyticsService, narrativeService *services.NarrativeService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		narrativeService: narrativeService,
	}
}

// ActivityAnalytics returns the full analytical read-model for one activity:
// summary, financials, participation, per-task performance and insights.
// Access is already verified by RequireActivityAccess middleware.
func (h *AnalyticsHandler) ActivityAnalytics(c *gin.Context) {
	activityInterface, exists := c.Get("activity")
	if !exists {
		apierrors.InternalError(c, "Activity not found in context")
		return
	}
	activity := activityInterface.(models.Activity)

	report, err := h.analyticsService.ActivityReport(activity.ID)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ActivityAnalyticsBatch computes read-models for every activity, optionally
// scoped to a village.
func (h *AnalyticsHandler) ActivityAnalyticsBatch(c *gin.Context) {
	var villageID *uint64
	if raw := c.Query("village_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid village_id")
			return
		}
		villageID = &id
	}

	reports, err := h.analyticsService.ActivityReports(c.Request.Context(), villageID)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": reports,
	})
}

// GroupedReports returns completion reports grouped per activity, newest
// first, narrowed by the query string filters. Unparseable filter values are
// ignored rather than rejected, so a sloppy query degrades to a wider view.
func (h *AnalyticsHandler) GroupedReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.ReportFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	criteria := analytics.Criteria{
		Query: c.Query("q"),
	}

	if id, err := strconv.ParseUint(c.Query("activity_id"), 10, 64); err == nil {
		filter.ActivityID = &id
		criteria.ActivityID = &id
	}
	if id, err := strconv.ParseUint(c.Query("team_id"), 10, 64); err == nil {
		filter.TeamID = &id
		criteria.TeamID = &id
	}
	if t, ok := parseDateParam(c.Query("date_from")); ok {
		criteria.DateFrom = &t
	}
	if t, ok := parseDateParam(c.Query("date_to")); ok {
		criteria.DateTo = &t
	}
	if b, err := strconv.ParseBool(c.Query("has_evidence")); err == nil {
		criteria.HasEvidence = &b
	}
	if v, err := strconv.ParseInt(c.Query("cost_min"), 10, 64); err == nil {
		criteria.CostMin = &v
	}
	if v, err := strconv.ParseInt(c.Query("cost_max"), 10, 64); err == nil {
		criteria.CostMax = &v
	}
	if v, err := strconv.Atoi(c.Query("participants_min")); err == nil {
		criteria.ParticipMin = &v
	}
	if v, err := strconv.Atoi(c.Query("participants_max")); err == nil {
		criteria.ParticipMax = &v
	}

	groups, err := h.analyticsService.GroupedReports(filter, criteria)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": dto.ToActivityGroupDTOs(groups),
		"count":  len(groups),
	})
}

// Narrative produces a prose summary of an activity's analytics using the
// language model service.
func (h *AnalyticsHandler) Narrative(c *gin.Context) {
	activityInterface, exists := c.Get("activity")
	if !exists {
		apierrors.InternalError(c, "Activity not found in context")
		return
	}
	activity := activityInterface.(models.Activity)

	if h.narrativeService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Narrative service is not configured. Please set OPENAI_API_KEY environment variable."})
		return
	}

	report, err := h.analyticsService.ActivityReport(activity.ID)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	narrative, err := h.narrativeService.Summarize(c.Request.Context(), report)
	if err != nil {
		apierrors.InternalError(c, fmt.Sprintf("Failed to generate narrative: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"narrative": narrative,
	})
}

// parseDateParam accepts a date in YYYY-MM-DD or RFC3339 form.
func parseDateParam(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func respondAnalyticsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrActivityNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
