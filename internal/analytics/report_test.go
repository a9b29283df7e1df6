package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umuganda/community-activity-api/internal/models"
)

// The "Cleanup Day" reference scenario: two tasks, one fully reported with
// evidence, one still pending.
func cleanupDayFixture() (models.Activity, []models.Task) {
	activity := testActivity(1, "Cleanup Day", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))

	taskA := models.Task{
		ID:                   10,
		Title:                "Clear the drainage channel",
		ActivityID:           1,
		EstimatedCost:        1000,
		ActualCost:           1200,
		ExpectedParticipants: 10,
		ActualParticipants:   12,
	}
	taskA.Report = &models.Report{
		ID:           100,
		TaskID:       10,
		Comment:      "finished before noon",
		EvidenceURLs: []string{"https://example.org/channel.jpg"},
	}

	taskB := models.Task{
		ID:                   11,
		Title:                "Collect roadside litter",
		ActivityID:           1,
		EstimatedCost:        500,
		ActualCost:           400,
		ExpectedParticipants: 5,
		ActualParticipants:   2,
	}

	return activity, []models.Task{taskA, taskB}
}

func TestBuildActivityReport_CleanupDayScenario(t *testing.T) {
	activity, tasks := cleanupDayFixture()
	report := BuildActivityReport(activity, tasks)

	assert.Equal(t, int64(1500), report.Financial.TotalEstimatedCost)
	assert.Equal(t, int64(1600), report.Financial.TotalActualCost)
	assert.Equal(t, int64(100), report.Financial.CostVariance)
	assert.Equal(t, 50, report.Summary.CompletionRate)
	assert.Equal(t, 93, report.Participation.ParticipationRate)

	require.Len(t, report.TaskOverview, 2)

	taskA := report.TaskOverview[0]
	assert.True(t, taskA.Reported)
	assert.Contains(t, []PerformanceStatus{PerformanceGood, PerformanceExcellent}, taskA.Performance.Status)

	taskB := report.TaskOverview[1]
	assert.False(t, taskB.Reported)
	assert.Nil(t, taskB.Report)
	assert.Contains(t, []RiskLevel{RiskLow, RiskMedium}, taskB.Performance.RiskLevel)
}

func TestBuildActivityReport_Idempotent(t *testing.T) {
	activity, tasks := cleanupDayFixture()

	first, err := json.Marshal(BuildActivityReport(activity, tasks))
	require.NoError(t, err)
	second, err := json.Marshal(BuildActivityReport(activity, tasks))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildActivityReport_AllOutputsFinite(t *testing.T) {
	// Degenerate inputs that would produce NaN/Inf in unguarded arithmetic.
	activity := testActivity(1, "Degenerate", time.Now())
	tasks := []models.Task{
		{ID: 1, ActivityID: 1},                      // all zeros, no report
		{ID: 2, ActivityID: 1, ActualCost: 300},     // spend against zero estimate
		{ID: 3, ActivityID: 1, ActualParticipants: 4}, // turnout against zero expectation
	}

	report := BuildActivityReport(activity, tasks)

	assert.Equal(t, 0, report.Financial.CostVariancePercent)
	assert.Equal(t, 0, report.Participation.ParticipationRate)
	for _, overview := range report.TaskOverview {
		perf := overview.Performance
		for _, v := range []int{perf.PerformanceScore, perf.CostEfficiency, perf.ParticipantEngagement, perf.CompletionQuality} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestBuildActivityReports_BatchPreservesOrder(t *testing.T) {
	var activities []models.Activity
	for i := uint64(1); i <= 8; i++ {
		activity := testActivity(i, "Batch", time.Now())
		activity.Tasks = []models.Task{
			{ID: i * 10, ActivityID: i, EstimatedCost: 100, ActualCost: 100},
		}
		activities = append(activities, activity)
	}

	reports, err := BuildActivityReports(context.Background(), activities)
	require.NoError(t, err)
	require.Len(t, reports, 8)
	for i, report := range reports {
		assert.Equal(t, activities[i].ID, report.Activity.ID)
	}
}

func TestBuildActivityReports_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	activities := []models.Activity{testActivity(1, "A", time.Now())}
	_, err := BuildActivityReports(ctx, activities)
	assert.Error(t, err)
}
