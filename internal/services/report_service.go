package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/umuganda/community-activity-api/internal/constants"
	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrReportAlreadyFiled  = errors.New("a report has already been filed for this task")
	ErrTooManyEvidenceURLs = errors.New("too many evidence attachments")
	ErrInvalidAttendee     = errors.New("one or more attendees do not exist or are not team members")
	ErrReportAccessDenied  = errors.New("user does not have permission to report on this task")
)

// ReportService handles completion report business logic.
type ReportService struct {
	reportRepo repository.ReportRepository
	taskRepo   repository.TaskRepository
	teamRepo   repository.TeamRepository
	userRepo   repository.UserRepository
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repository.ReportRepository, taskRepo repository.TaskRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		taskRepo:   taskRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
	}
}

// SubmitReportInput represents input for filing a completion report.
type SubmitReportInput struct {
	TaskID       uint64
	AuthorID     uint64
	Comment      string
	Challenges   string
	Materials    []string
	EvidenceURLs []string
	AttendeeIDs  []uint64

	// Actual figures observed in the field, written back onto the task.
	ActualCost            int64
	ActualParticipants    int
	ActualFinancialImpact int64
}

// SubmitReport files the one-time completion report for a task and records
// the actual figures on the task itself. A task accepts exactly one report.
func (s *ReportService) SubmitReport(input SubmitReportInput) (*models.Report, error) {
	if len(input.EvidenceURLs) > constants.MaxEvidenceURLs {
		return nil, ErrTooManyEvidenceURLs
	}
	if input.ActualCost < 0 || input.ActualParticipants < 0 || input.ActualFinancialImpact < 0 {
		return nil, ErrNegativeActuals
	}

	task, err := s.taskRepo.FindByID(input.TaskID, "Activity")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// Reports come from the owning team or the activity owner.
	if task.Activity.CreatorID != input.AuthorID {
		if _, err := s.teamRepo.FindMember(task.TeamID, input.AuthorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReportAccessDenied
			}
			return nil, fmt.Errorf("failed to verify team membership: %w", err)
		}
	}

	if _, err := s.reportRepo.FindByTaskID(input.TaskID); err == nil {
		return nil, ErrReportAlreadyFiled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing report: %w", err)
	}

	attendeeIDs := uniqueUint64(input.AttendeeIDs)
	if len(attendeeIDs) > 0 {
		count, err := s.userRepo.CountByIDsInTeam(attendeeIDs, task.TeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify attendees: %w", err)
		}
		if int(count) != len(attendeeIDs) {
			return nil, ErrInvalidAttendee
		}
	}

	report := &models.Report{
		TaskID:       input.TaskID,
		AuthorID:     input.AuthorID,
		Comment:      strings.TrimSpace(input.Comment),
		Challenges:   strings.TrimSpace(input.Challenges),
		Materials:    input.Materials,
		EvidenceURLs: input.EvidenceURLs,
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	if err := s.reportRepo.AddAttendees(report.ID, attendeeIDs); err != nil {
		return nil, fmt.Errorf("failed to record attendees: %w", err)
	}

	// Write back the observed actuals and close the task.
	task.ActualCost = input.ActualCost
	task.ActualParticipants = input.ActualParticipants
	task.ActualFinancialImpact = input.ActualFinancialImpact
	task.Status = models.TaskStatusCompleted
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task actuals: %w", err)
	}

	return s.reportRepo.FindByID(report.ID, "Task", "Author", "Attendees", "Attendees.User")
}

// GetReport returns a report with related data.
func (s *ReportService) GetReport(reportID uint64) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(reportID, "Task", "Task.Activity", "Author", "Attendees", "Attendees.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// GetReportForTask returns the canonical report of a task, or
// ErrReportNotFound when the task is still pending.
func (s *ReportService) GetReportForTask(taskID uint64) (*models.Report, error) {
	report, err := s.reportRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// DeleteReport removes a report. Author or activity creator only.
func (s *ReportService) DeleteReport(reportID, actorID uint64) error {
	report, err := s.reportRepo.FindByID(reportID, "Task", "Task.Activity")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to find report: %w", err)
	}

	if report.AuthorID != actorID && report.Task.Activity.CreatorID != actorID {
		return ErrReportAccessDenied
	}

	if err := s.reportRepo.Delete(reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
