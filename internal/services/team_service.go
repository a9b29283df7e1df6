package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"github.com/umuganda/community-activity-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrNotTeamMember     = errors.New("user is not a member of the team")
	ErrNotTeamLeader     = errors.New("only the team leader can perform this action")
	ErrAlreadyTeamMember = errors.New("user is already a member of the team")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrTeamNameRequired  = errors.New("team name is required")
)

// TeamService handles team (isibo) business logic.
type TeamService struct {
	teamRepo repository.TeamRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

// CreateTeamInput represents input for creating a team.
type CreateTeamInput struct {
	Name      string
	VillageID *uint64
	CreatorID uint64
}

// CreateTeam creates a team and registers the creator as its leader.
func (s *TeamService) CreateTeam(input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	team := &models.Team{
		Name:       input.Name,
		VillageID:  input.VillageID,
		InviteCode: inviteCode,
	}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	member := &models.TeamMember{
		TeamID:   team.ID,
		UserID:   input.CreatorID,
		Role:     models.RoleLeader,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add creator to team: %w", err)
	}

	return team, nil
}

// JoinTeam adds a user to the team matching the invite code.
func (s *TeamService) JoinTeam(inviteCode string, userID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if _, err := s.teamRepo.FindMember(team.ID, userID); err == nil {
		return nil, ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to join team: %w", err)
	}

	return team, nil
}

// ListTeams returns the teams a user belongs to, with the user's role.
func (s *TeamService) ListTeams(userID uint64) ([]models.TeamMember, error) {
	memberships, err := s.teamRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return memberships, nil
}

// GetTeam returns a team with its members if the requester is a member.
func (s *TeamService) GetTeam(teamID, userID uint64) (*models.Team, []models.TeamMember, error) {
	if err := s.ensureMember(teamID, userID); err != nil {
		return nil, nil, err
	}

	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	return team, members, nil
}

// RegenerateInviteCode replaces the team's invite code. Leader only.
func (s *TeamService) RegenerateInviteCode(teamID, actorID uint64) (*models.Team, error) {
	team, err := s.requireLeader(teamID, actorID)
	if err != nil {
		return nil, err
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	team.InviteCode = inviteCode
	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// RemoveMember removes a member from the team. Leader only; the leader
// cannot remove themselves.
func (s *TeamService) RemoveMember(teamID, actorID, userID uint64) error {
	if actorID == userID {
		return ErrNotTeamLeader
	}
	if _, err := s.requireLeader(teamID, actorID); err != nil {
		return err
	}

	if _, err := s.teamRepo.FindMember(teamID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotTeamMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.teamRepo.RemoveMember(teamID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// DeleteTeam deletes a team together with its tasks and memberships.
func (s *TeamService) DeleteTeam(teamID, actorID uint64) error {
	if _, err := s.requireLeader(teamID, actorID); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (s *TeamService) ensureMember(teamID, userID uint64) error {
	_, err := s.teamRepo.FindMember(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotTeamMember
		}
		return fmt.Errorf("failed to verify membership: %w", err)
	}
	return nil
}

func (s *TeamService) requireLeader(teamID, actorID uint64) (*models.Team, error) {
	member, err := s.teamRepo.FindMember(teamID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if member.Role != models.RoleLeader {
		return nil, ErrNotTeamLeader
	}

	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}
