package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/models"
)

// RequireActivityAccess loads the activity from the :id URL parameter and
// stores it in the request context. Every authenticated user can read
// activities in their scope; write-side checks stay in the services.
func RequireActivityAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		activityIDStr := c.Param("id")
		activityID, err := strconv.ParseUint(activityIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid activity ID",
			})
			c.Abort()
			return
		}

		if _, exists := GetUserID(c); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var activity models.Activity
		if err := database.GetDB().
			Preload("Village").
			Preload("Creator").
			First(&activity, activityID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Activity not found",
			})
			c.Abort()
			return
		}

		c.Set("activity", activity)
		c.Next()
	}
}
