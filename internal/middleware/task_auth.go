package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/models"
)

// RequireTaskAccess checks if the user has access to a task.
// User must be a member of the task's team or the activity creator.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid task ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Activity").
			Preload("Team").
			Preload("Report").
			Preload("Report.Attendees").
			Preload("Report.Attendees.User").
			First(&task, taskID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Task not found",
			})
			c.Abort()
			return
		}

		if task.Activity.CreatorID != userID {
			var member models.TeamMember
			err = database.GetDB().
				Where("team_id = ? AND user_id = ?", task.TeamID, userID).
				First(&member).Error
			if err != nil {
				// Return 404 instead of 403 to avoid leaking task existence
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Task not found",
				})
				c.Abort()
				return
			}
		}

		c.Set("task", task)
		c.Next()
	}
}
