package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/dto"
	apierrors "github.com/umuganda/community-activity-api/internal/errors"
	"github.com/umuganda/community-activity-api/internal/middleware"
	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/services"
)

// TeamHandler coordinates team (isibo) HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a new team with the current user as leader.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTeamRequest struct {
		Name      string  `json:"name" binding:"required"`
		VillageID *uint64 `json:"village_id"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(services.CreateTeamInput{
		Name:      req.Name,
		VillageID: req.VillageID,
		CreatorID: userID,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team, true))
}

// ListTeams returns all teams the current user belongs to.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.teamService.ListTeams(userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	teams := make([]dto.TeamWithRoleDTO, len(memberships))
	for i, membership := range memberships {
		teams[i] = dto.ToTeamWithRoleDTO(membership)
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
	})
}

// JoinTeam adds the current user to the team matching the invite code.
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinTeamRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.JoinTeam(req.InviteCode, userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team, false))
}

// GetTeam returns team details with members.
// The team and membership are loaded by RequireTeamAccess middleware.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamInterface, exists := c.Get("team")
	if !exists {
		apierrors.InternalError(c, "Team not found in context")
		return
	}
	team := teamInterface.(models.Team)

	memberInterface, exists := c.Get("team_member")
	if !exists {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}
	member := memberInterface.(models.TeamMember)

	_, members, err := h.teamService.GetTeam(team.ID, member.UserID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDetailDTO(team, members, member.Role))
}

// RegenerateInviteCode replaces the team's invite code. Leader only.
func (h *TeamHandler) RegenerateInviteCode(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamInterface, exists := c.Get("team")
	if !exists {
		apierrors.InternalError(c, "Team not found in context")
		return
	}
	team := teamInterface.(models.Team)

	updated, err := h.teamService.RegenerateInviteCode(team.ID, userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invite_code": updated.InviteCode,
	})
}

// RemoveMember removes a member from the team. Leader only.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamInterface, exists := c.Get("team")
	if !exists {
		apierrors.InternalError(c, "Team not found in context")
		return
	}
	team := teamInterface.(models.Team)

	memberID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.teamService.RemoveMember(team.ID, userID, memberID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// DeleteTeam deletes a team with its tasks and memberships. Leader only.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamInterface, exists := c.Get("team")
	if !exists {
		apierrors.InternalError(c, "Team not found in context")
		return
	}
	team := teamInterface.(models.Team)

	if err := h.teamService.DeleteTeam(team.ID, userID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted successfully",
	})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTeamMember):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrNotTeamLeader):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
