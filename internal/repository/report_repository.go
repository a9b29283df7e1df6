package repository

import (
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// Create stores a new report
func (r *GormReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// FindByID finds a report by ID with optional preloading
func (r *GormReportRepository) FindByID(id uint64, preload ...string) (*models.Report, error) {
	var report models.Report
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&report, id).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// FindByTaskID finds the canonical report for a task
func (r *GormReportRepository) FindByTaskID(taskID uint64) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("task_id = ?", taskID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListForAnalytics retrieves reports joined with their task, team and
// activity, the shape the analytics engine aggregates over. Reports whose
// task or activity has been deleted come back with zero-valued associations
// and are dropped by the aggregator.
func (r *GormReportRepository) ListForAnalytics(filter ReportFilter) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{})

	if filter.ActivityID != nil {
		taskSubQuery := r.db.Model(&models.Task{}).
			Select("tasks.id").
			Where("tasks.activity_id = ?", *filter.ActivityID)
		query = query.Where("reports.task_id IN (?)", taskSubQuery)
	}
	if filter.TeamID != nil {
		taskSubQuery := r.db.Model(&models.Task{}).
			Select("tasks.id").
			Where("tasks.team_id = ?", *filter.TeamID)
		query = query.Where("reports.task_id IN (?)", taskSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(database.Paginate(filter.Page, filter.PageSize))

	var reports []models.Report
	err := query.
		Preload("Task").
		Preload("Task.Activity").
		Preload("Task.Team").
		Preload("Attendees").
		Preload("Attendees.User").
		Order("reports.created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// AddAttendees records the participant set of a report
func (r *GormReportRepository) AddAttendees(reportID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	attendees := make([]models.ReportAttendee, len(userIDs))
	for i, userID := range userIDs {
		attendees[i] = models.ReportAttendee{
			ReportID: reportID,
			UserID:   userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "report_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&attendees).Error
}

// Delete soft deletes a report and its attendee rows
func (r *GormReportRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&models.ReportAttendee{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Report{}, id).Error
	})
}
