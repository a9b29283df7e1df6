// Package analytics implements the activity reporting engine: aggregation of
// task completion reports, financial and participation variance, per-task
// performance scoring, and qualitative insights. Every function in this
// package is a pure computation over a snapshot of models; nothing here
// touches the database or holds state between calls.
package analytics

import (
	"github.com/umuganda/community-activity-api/internal/models"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type PerformanceStatus string

const (
	PerformanceExcellent        PerformanceStatus = "excellent"
	PerformanceGood             PerformanceStatus = "good"
	PerformanceAverage          PerformanceStatus = "average"
	PerformanceNeedsImprovement PerformanceStatus = "needs_improvement"
)

type OverallStatus string

const (
	OverallExcellent OverallStatus = "excellent"
	OverallGood      OverallStatus = "good"
	OverallAverage   OverallStatus = "average"
	OverallPoor      OverallStatus = "poor"
)

// ActivitySummary is the headline view of a single activity.
type ActivitySummary struct {
	TotalTasks        int   `json:"total_tasks"`
	CompletedTasks    int   `json:"completed_tasks"`
	CompletionRate    int   `json:"completion_rate"`
	TotalCost         int64 `json:"total_cost"`
	TotalParticipants int   `json:"total_participants"`
}

// CostBreakdownEntry is the per-task row of a financial analysis. Both
// variances are signed: a positive cost variance means over budget, while a
// positive impact variance means the task delivered more value than planned.
type CostBreakdownEntry struct {
	TaskID         uint64 `json:"task_id"`
	TaskTitle      string `json:"task_title"`
	EstimatedCost  int64  `json:"estimated_cost"`
	ActualCost     int64  `json:"actual_cost"`
	Variance       int64  `json:"variance"`
	ExpectedImpact int64  `json:"expected_impact"`
	ActualImpact   int64  `json:"actual_impact"`
	ImpactVariance int64  `json:"impact_variance"`
}

// FinancialAnalysis compares estimated against actual spend and financial
// impact for an activity. CostVariance is signed: positive means over budget.
// ImpactVariance follows the opposite convention: positive means the activity
// generated more value than expected.
type FinancialAnalysis struct {
	TotalEstimatedCost  int64                `json:"total_estimated_cost"`
	TotalActualCost     int64                `json:"total_actual_cost"`
	CostVariance        int64                `json:"cost_variance"`
	CostVariancePercent int                  `json:"cost_variance_percent"`
	TotalExpectedImpact int64                `json:"total_expected_impact"`
	TotalActualImpact   int64                `json:"total_actual_impact"`
	ImpactVariance      int64                `json:"impact_variance"`
	CostBreakdown       []CostBreakdownEntry `json:"cost_breakdown"`
}

// ParticipantDistributionEntry is the per-task row of a participation
// analysis. Variance is signed: positive means turnout above expectation.
type ParticipantDistributionEntry struct {
	TaskID       uint64   `json:"task_id"`
	TaskTitle    string   `json:"task_title"`
	Expected     int      `json:"expected"`
	Actual       int      `json:"actual"`
	Variance     int      `json:"variance"`
	Participants []string `json:"participants"`
}

// ParticipantAnalysis compares expected against actual turnout.
type ParticipantAnalysis struct {
	TotalExpectedParticipants  int                            `json:"total_expected_participants"`
	TotalActualParticipants    int                            `json:"total_actual_participants"`
	ParticipationRate          int                            `json:"participation_rate"`
	AverageParticipantsPerTask int                            `json:"average_participants_per_task"`
	Distribution               []ParticipantDistributionEntry `json:"distribution"`
}

// TaskPerformance carries the composite score, sub-scores and classification
// for a single task. All sub-scores are integers in [0, 100].
type TaskPerformance struct {
	TaskID                uint64            `json:"task_id"`
	TaskTitle             string            `json:"task_title"`
	PerformanceScore      int               `json:"performance_score"`
	CostEfficiency        int               `json:"cost_efficiency"`
	ParticipantEngagement int               `json:"participant_engagement"`
	CompletionQuality     int               `json:"completion_quality"`
	RiskLevel             RiskLevel         `json:"risk_level"`
	Status                PerformanceStatus `json:"status"`
}

// Insights is the qualitative output: an overall status plus trigger-based
// key points and recommendations. Recommendations are populated only from
// negative signals and may legitimately be empty.
type Insights struct {
	OverallStatus   OverallStatus `json:"overall_status"`
	KeyPoints       []string      `json:"key_points"`
	Recommendations []string      `json:"recommendations"`
}

// TaskOverview pairs a task with its report (if filed) and performance.
type TaskOverview struct {
	Task        models.Task     `json:"task"`
	Report      *models.Report  `json:"report,omitempty"`
	Reported    bool            `json:"reported"`
	Performance TaskPerformance `json:"performance"`
}

// ActivityReport is the full read-model handed to presentation consumers.
type ActivityReport struct {
	Activity      models.Activity     `json:"activity"`
	Summary       ActivitySummary     `json:"summary"`
	Financial     FinancialAnalysis   `json:"financial_analysis"`
	Participation ParticipantAnalysis `json:"participant_analysis"`
	TaskOverview  []TaskOverview      `json:"task_overview"`
	Insights      Insights            `json:"insights"`
}

// GroupTotals accumulates the summable figures of one activity group.
type GroupTotals struct {
	EstimatedCost           int64 `json:"estimated_cost"`
	ActualCost              int64 `json:"actual_cost"`
	ExpectedParticipants    int   `json:"expected_participants"`
	ActualParticipants      int   `json:"actual_participants"`
	ExpectedFinancialImpact int64 `json:"expected_financial_impact"`
	ActualFinancialImpact   int64 `json:"actual_financial_impact"`
}

// ActivityGroup is the set of reports filed under one activity together with
// their accumulated totals.
type ActivityGroup struct {
	Activity models.Activity `json:"activity"`
	Reports  []models.Report `json:"reports"`
	Totals   GroupTotals     `json:"totals"`
}
