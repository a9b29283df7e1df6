package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/database"
	apierrors "github.com/umuganda/community-activity-api/internal/errors"
	"github.com/umuganda/community-activity-api/internal/models"
)

// LocationHandler serves the read-only administrative hierarchy lookup.
type LocationHandler struct{}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler() *LocationHandler {
	return &LocationHandler{}
}

// ListLocations returns locations, narrowed by level and/or parent_id. Used
// by activity forms to pick a village.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	query := database.GetDB().Model(&models.Location{})

	if raw := c.Query("level"); raw != "" {
		query = query.Where("level = ?", models.LocationLevel(raw))
	}
	if raw := c.Query("parent_id"); raw != "" {
		parentID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid parent_id")
			return
		}
		query = query.Where("parent_id = ?", parentID)
	}

	var locations []models.Location
	if err := query.Order("name ASC").Find(&locations).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch locations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": locations,
	})
}
