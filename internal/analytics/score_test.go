package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/umuganda/community-activity-api/internal/models"
)

func TestScoreTask_OnBudgetFullTurnoutFullDocs(t *testing.T) {
	task := pendingTask(1, 1000, 1000, 10, 10)
	report := &models.Report{
		ID:           1,
		TaskID:       1,
		Comment:      "done",
		EvidenceURLs: []string{"https://example.org/photo.jpg"},
	}

	perf := ScoreTask(task, report)
	assert.Equal(t, 100, perf.CostEfficiency)
	assert.Equal(t, 100, perf.ParticipantEngagement)
	assert.Equal(t, 100, perf.CompletionQuality)
	assert.Equal(t, 100, perf.PerformanceScore)
	assert.Equal(t, PerformanceExcellent, perf.Status)
	assert.Equal(t, RiskLow, perf.RiskLevel)
}

func TestScoreTask_CostEfficiencyPenalizesBothDirections(t *testing.T) {
	over := ScoreTask(pendingTask(1, 1000, 1200, 0, 0), &models.Report{ID: 1})
	under := ScoreTask(pendingTask(2, 1000, 800, 0, 0), &models.Report{ID: 2})

	// A 20% overrun and a 20% underrun are the same planning failure.
	assert.Equal(t, 80, over.CostEfficiency)
	assert.Equal(t, 80, under.CostEfficiency)

	wild := ScoreTask(pendingTask(3, 100, 500, 0, 0), &models.Report{ID: 3})
	assert.Equal(t, 0, wild.CostEfficiency) // floored, never negative
}

func TestScoreTask_EngagementCappedAt100(t *testing.T) {
	perf := ScoreTask(pendingTask(1, 0, 0, 10, 25), &models.Report{ID: 1})
	assert.Equal(t, 100, perf.ParticipantEngagement)
}

func TestScoreTask_EngagementWithoutExpectation(t *testing.T) {
	some := ScoreTask(pendingTask(1, 0, 0, 0, 3), &models.Report{ID: 1})
	none := ScoreTask(pendingTask(2, 0, 0, 0, 0), &models.Report{ID: 2})

	assert.Equal(t, 100, some.ParticipantEngagement)
	assert.Equal(t, 0, none.ParticipantEngagement)
}

func TestScoreTask_QualityComponents(t *testing.T) {
	task := pendingTask(1, 100, 100, 5, 5)

	bare := ScoreTask(task, &models.Report{ID: 1})
	withEvidence := ScoreTask(task, &models.Report{ID: 1, EvidenceURLs: []string{"u"}})
	withNarrative := ScoreTask(task, &models.Report{ID: 1, Challenges: "rain delayed the work"})
	full := ScoreTask(task, &models.Report{ID: 1, Comment: "ok", EvidenceURLs: []string{"u"}})

	assert.Equal(t, 40, bare.CompletionQuality)
	assert.Equal(t, 70, withEvidence.CompletionQuality)
	assert.Equal(t, 70, withNarrative.CompletionQuality)
	assert.Equal(t, 100, full.CompletionQuality)
}

func TestScoreTask_MissingReportDoesNotPanic(t *testing.T) {
	perf := ScoreTask(pendingTask(1, 500, 400, 5, 2), nil)

	assert.Equal(t, 0, perf.CompletionQuality)
	assert.Equal(t, 40, perf.ParticipantEngagement)
	assert.Equal(t, 80, perf.CostEfficiency)
	assert.Equal(t, 40, perf.PerformanceScore)
	assert.Equal(t, PerformanceNeedsImprovement, perf.Status)
	// Unreported tasks are judged on the cost signal alone.
	assert.Equal(t, RiskMedium, perf.RiskLevel)
}

func TestScoreTask_ZeroEverything(t *testing.T) {
	perf := ScoreTask(models.Task{ID: 1}, nil)

	assert.Equal(t, 100, perf.CostEfficiency) // no estimate, no deviation
	assert.Equal(t, 0, perf.ParticipantEngagement)
	assert.Equal(t, 0, perf.CompletionQuality)
	assert.Equal(t, RiskLow, perf.RiskLevel)
}

func TestScoreTask_RiskBuckets(t *testing.T) {
	// Large overrun forces high risk even with a report filed.
	overrun := ScoreTask(pendingTask(1, 1000, 1300, 10, 10),
		&models.Report{ID: 1, Comment: "x", EvidenceURLs: []string{"u"}})
	assert.Equal(t, RiskHigh, overrun.RiskLevel)

	// Moderate overrun lands on medium.
	moderate := ScoreTask(pendingTask(2, 1000, 1150, 10, 10),
		&models.Report{ID: 2, Comment: "x", EvidenceURLs: []string{"u"}})
	assert.Equal(t, RiskMedium, moderate.RiskLevel)

	// Low composite score is high risk regardless of budget discipline.
	weak := ScoreTask(pendingTask(3, 1000, 1000, 20, 1), &models.Report{ID: 3})
	assert.Less(t, weak.PerformanceScore, 50)
	assert.Equal(t, RiskHigh, weak.RiskLevel)
}

func TestScoreTask_StatusBuckets(t *testing.T) {
	cases := []struct {
		score int
		want  PerformanceStatus
	}{
		{100, PerformanceExcellent},
		{85, PerformanceExcellent},
		{84, PerformanceGood},
		{70, PerformanceGood},
		{69, PerformanceAverage},
		{50, PerformanceAverage},
		{49, PerformanceNeedsImprovement},
		{0, PerformanceNeedsImprovement},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusBucket(tc.score), "score %d", tc.score)
	}
}
