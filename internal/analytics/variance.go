package analytics

import (
	"math"

	"github.com/umuganda/community-activity-api/internal/models"
)

// ratioPercent returns round(numerator/denominator*100). A zero denominator
// yields 0 by definition, never NaN or infinity.
func ratioPercent(numerator, denominator int64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// clampPercent bounds a percentage to [0, 100].
func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// reported reports whether a task has its completion report filed. Analytics
// counts a task as completed exactly when a report exists, regardless of the
// task's own status field.
func reported(task models.Task) bool {
	return task.Report != nil && task.Report.ID != 0
}

// Summarize computes the headline summary for one activity's tasks.
func Summarize(tasks []models.Task) ActivitySummary {
	summary := ActivitySummary{TotalTasks: len(tasks)}

	for _, task := range tasks {
		if reported(task) {
			summary.CompletedTasks++
		}
		summary.TotalCost += task.ActualCost
		summary.TotalParticipants += task.ActualParticipants
	}

	summary.CompletionRate = clampPercent(
		ratioPercent(int64(summary.CompletedTasks), int64(summary.TotalTasks)))
	return summary
}

// AnalyzeFinancials derives total and per-task cost and financial-impact
// variance. Cost variance is signed: positive means over budget. Impact
// variance is actual minus expected value delivered, so positive is
// favorable. The percentage form is 0 when the estimate is 0.
func AnalyzeFinancials(tasks []models.Task) FinancialAnalysis {
	analysis := FinancialAnalysis{
		CostBreakdown: make([]CostBreakdownEntry, 0, len(tasks)),
	}

	for _, task := range tasks {
		analysis.TotalEstimatedCost += task.EstimatedCost
		analysis.TotalActualCost += task.ActualCost
		analysis.TotalExpectedImpact += task.ExpectedFinancialImpact
		analysis.TotalActualImpact += task.ActualFinancialImpact
		analysis.CostBreakdown = append(analysis.CostBreakdown, CostBreakdownEntry{
			TaskID:         task.ID,
			TaskTitle:      task.Title,
			EstimatedCost:  task.EstimatedCost,
			ActualCost:     task.ActualCost,
			Variance:       task.ActualCost - task.EstimatedCost,
			ExpectedImpact: task.ExpectedFinancialImpact,
			ActualImpact:   task.ActualFinancialImpact,
			ImpactVariance: task.ActualFinancialImpact - task.ExpectedFinancialImpact,
		})
	}

	analysis.CostVariance = analysis.TotalActualCost - analysis.TotalEstimatedCost
	analysis.CostVariancePercent = ratioPercent(analysis.CostVariance, analysis.TotalEstimatedCost)
	analysis.ImpactVariance = analysis.TotalActualImpact - analysis.TotalExpectedImpact
	return analysis
}

// AnalyzeParticipation derives total and per-task turnout variance. Variance
// is signed: positive means turnout above expectation, which unlike cost is a
// favorable signal.
func AnalyzeParticipation(tasks []models.Task) ParticipantAnalysis {
	analysis := ParticipantAnalysis{
		Distribution: make([]ParticipantDistributionEntry, 0, len(tasks)),
	}

	for _, task := range tasks {
		analysis.TotalExpectedParticipants += task.ExpectedParticipants
		analysis.TotalActualParticipants += task.ActualParticipants

		entry := ParticipantDistributionEntry{
			TaskID:       task.ID,
			TaskTitle:    task.Title,
			Expected:     task.ExpectedParticipants,
			Actual:       task.ActualParticipants,
			Variance:     task.ActualParticipants - task.ExpectedParticipants,
			Participants: []string{},
		}
		if task.Report != nil {
			for _, attendee := range task.Report.Attendees {
				name := attendee.User.FullName
				if name == "" {
					name = attendee.User.Username
				}
				if name != "" {
					entry.Participants = append(entry.Participants, name)
				}
			}
		}
		analysis.Distribution = append(analysis.Distribution, entry)
	}

	analysis.ParticipationRate = clampPercent(ratioPercent(
		int64(analysis.TotalActualParticipants), int64(analysis.TotalExpectedParticipants)))

	if len(tasks) > 0 {
		analysis.AverageParticipantsPerTask = int(math.Round(
			float64(analysis.TotalActualParticipants) / float64(len(tasks))))
	}
	return analysis
}
