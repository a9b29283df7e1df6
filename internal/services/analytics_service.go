package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/umuganda/community-activity-api/internal/analytics"
	"github.com/umuganda/community-activity-api/internal/repository"
	"gorm.io/gorm"
)

// AnalyticsService bridges the report store and the pure analytics engine.
// It owns no computation of its own: it fetches a snapshot and hands it to
// the engine, so every response is a fresh, idempotent recomputation.
type AnalyticsService struct {
	activityRepo repository.ActivityRepository
	taskRepo     repository.TaskRepository
	reportRepo   repository.ReportRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(activityRepo repository.ActivityRepository, taskRepo repository.TaskRepository, reportRepo repository.ReportRepository) *AnalyticsService {
	return &AnalyticsService{
		activityRepo: activityRepo,
		taskRepo:     taskRepo,
		reportRepo:   reportRepo,
	}
}

// ActivityReport computes the full read-model for one activity.
func (s *AnalyticsService) ActivityReport(activityID uint64) (*analytics.ActivityReport, error) {
	activity, err := s.activityRepo.FindByID(activityID, "Village", "Creator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	tasks, err := s.taskRepo.ListByActivity(activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task snapshot: %w", err)
	}

	report := analytics.BuildActivityReport(*activity, tasks)
	return &report, nil
}

// ActivityReports computes read-models for every activity, optionally scoped
// to a village, fanning out across activities.
func (s *AnalyticsService) ActivityReports(ctx context.Context, villageID *uint64) ([]analytics.ActivityReport, error) {
	activities, err := s.activityRepo.ListWithTasks(villageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity snapshot: %w", err)
	}

	return analytics.BuildActivityReports(ctx, activities)
}

// GroupedReports aggregates all reports by activity and applies the given
// filter criteria to the grouped view.
func (s *AnalyticsService) GroupedReports(filter repository.ReportFilter, criteria analytics.Criteria) ([]analytics.ActivityGroup, error) {
	reports, _, err := s.reportRepo.ListForAnalytics(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load report snapshot: %w", err)
	}

	groups := analytics.Aggregate(reports)
	return analytics.Filter(groups, criteria), nil
}
