package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/models"
)

// RequireTeamAccess checks that the user is a member of the team in the :id
// URL parameter and stores the team and membership in the request context.
func RequireTeamAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamIDStr := c.Param("id")
		teamID, err := strconv.ParseUint(teamIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid team ID",
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

		var team models.Team
		if err := database.GetDB().First(&team, teamID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Team not found",
			})
			c.Abort()
			return
		}

		var member models.TeamMember
		if err := database.GetDB().
			Where("team_id = ? AND user_id = ?", teamID, userID).
			First(&member).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Team not found",
			})
			c.Abort()
			return
		}

		c.Set("team", team)
		c.Set("team_member", member)
		c.Next()
	}
}

// RequireTeamLeader ensures the current team membership carries the leader
// role. Must run after RequireTeamAccess.
func RequireTeamLeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberInterface, exists := c.Get("team_member")
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Team membership not loaded",
			})
			c.Abort()
			return
		}

		member, ok := memberInterface.(models.TeamMember)
		if !ok || member.Role != models.RoleLeader {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Team leader role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
