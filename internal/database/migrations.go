package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for analytics grouping and filtering
		{"tasks", "idx_tasks_activity_id", "activity_id"},
		{"tasks", "idx_tasks_team_id", "team_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Report lookup by task (one report per task)
		{"reports", "idx_reports_task_id", "task_id"},
		{"reports", "idx_reports_author_id", "author_id"},

		// Attendee join
		{"report_attendees", "idx_report_attendees_report_id", "report_id"},
		{"report_attendees", "idx_report_attendees_user_id", "user_id"},

		// Activity listing sorted by date
		{"activities", "idx_activities_date", "date"},
		{"activities", "idx_activities_village_id", "village_id"},

		// Team membership and invite lookup
		{"team_members", "idx_team_members_team_id", "team_id"},
		{"team_members", "idx_team_members_user_id", "user_id"},
		{"teams", "idx_teams_invite_code", "invite_code"},

		// Location hierarchy traversal
		{"locations", "idx_locations_parent_id", "parent_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
