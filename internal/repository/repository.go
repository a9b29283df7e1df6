package repository

import (
	"time"

	"github.com/umuganda/community-activity-api/internal/models"
)

// ReportFilter holds optional pre-filters for the analytics read path.
type ReportFilter struct {
	ActivityID *uint64
	TeamID     *uint64
	Page       int
	PageSize   int
}

// ReportRepository defines the read/write contract for completion reports.
// ListForAnalytics is the store adapter consumed by the analytics engine: it
// returns reports joined with their task, team and activity.
type ReportRepository interface {
	// Create stores a new report
	Create(report *models.Report) error

	// FindByID finds a report by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Report, error)

	// FindByTaskID finds the canonical report for a task
	FindByTaskID(taskID uint64) (*models.Report, error)

	// ListForAnalytics retrieves reports joined with task and activity data
	ListForAnalytics(filter ReportFilter) ([]models.Report, int64, error)

	// AddAttendees records the participant set of a report
	AddAttendees(reportID uint64, userIDs []uint64) error

	// Delete soft deletes a report and its attendee rows
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ActivityID  *uint64
	TeamID      *uint64
	Status      *models.TaskStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByActivity retrieves all tasks of an activity with reports and
	// attendees preloaded, ready for analytics
	ListByActivity(activityID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	// Create creates a new activity
	Create(activity *models.Activity) error

	// FindByID finds an activity by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Activity, error)

	// List retrieves activities ordered by date descending
	List(villageID *uint64, page, pageSize int) ([]models.Activity, int64, error)

	// ListWithTasks retrieves activities with tasks, reports and attendees
	// preloaded for batch analytics
	ListWithTasks(villageID *uint64) ([]models.Activity, error)

	// Update updates an activity
	Update(activity *models.Activity) error

	// Delete soft deletes an activity and its tasks
	Delete(id uint64) error
}

// TeamRepository defines the interface for team (isibo) data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// FindByInviteCode finds a team by invite code
	FindByInviteCode(code string) (*models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete deletes a team and all related data
	Delete(id uint64) error

	// AddMember adds a member to a team
	AddMember(member *models.TeamMember) error

	// RemoveMember removes a member from a team
	RemoveMember(teamID, userID uint64) error

	// FindMember finds a specific team member
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// ListMembersByUserID lists all teams a user belongs to
	ListMembersByUserID(userID uint64) ([]models.TeamMember, error)

	// ListMembers lists all members of a team
	ListMembers(teamID uint64) ([]models.TeamMember, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// CountByIDsInTeam counts how many of the given user IDs belong to a team
	CountByIDsInTeam(userIDs []uint64, teamID uint64) (int64, error)
}
