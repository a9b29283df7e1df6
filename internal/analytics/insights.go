package analytics

import (
	"fmt"
)

// BuildInsights derives the overall activity status and the trigger-based
// key points and recommendations. Key points are emitted only when their
// condition actually holds, at most one per category (financial,
// participation, completion, documentation). Recommendations come only from
// negative signals; an activity with nothing wrong gets an empty list.
func BuildInsights(summary ActivitySummary, financial FinancialAnalysis, participation ParticipantAnalysis, performances []TaskPerformance) Insights {
	return Insights{
		OverallStatus:   overallStatus(summary, participation, performances),
		KeyPoints:       keyPoints(summary, financial, participation, performances),
		Recommendations: recommendations(summary, financial, participation, performances),
	}
}

// overallStatus combines completion rate, participation rate and the task
// status distribution. Ties resolve toward the more conservative bucket, and
// an activity with no data lands on poor, not excellent.
func overallStatus(summary ActivitySummary, participation ParticipantAnalysis, performances []TaskPerformance) OverallStatus {
	completion := summary.CompletionRate
	turnout := participation.ParticipationRate

	anyNeedsImprovement := false
	for _, perf := range performances {
		if perf.Status == PerformanceNeedsImprovement {
			anyNeedsImprovement = true
			break
		}
	}

	switch {
	case completion >= overallExcellentMin && turnout >= overallExcellentMin && !anyNeedsImprovement:
		return OverallExcellent
	case completion >= overallGoodMin && turnout >= overallGoodMin:
		return OverallGood
	case completion >= overallAverageMin || turnout >= overallAverageMin:
		return OverallAverage
	default:
		return OverallPoor
	}
}

func keyPoints(summary ActivitySummary, financial FinancialAnalysis, participation ParticipantAnalysis, performances []TaskPerformance) []string {
	points := []string{}

	// Completion
	if summary.CompletionRate >= overallExcellentMin {
		points = append(points, fmt.Sprintf("Completion rate exceeded %d%%", overallExcellentMin))
	} else if summary.CompletionRate >= overallGoodMin {
		points = append(points, "Most tasks have been completed and reported")
	}

	// Financial. Budget praise requires at least one filed report; all-pending
	// activities have no observed spend to be within budget of.
	if summary.CompletedTasks > 0 {
		if allWithinBudget(financial) {
			points = append(points, "All tasks stayed within budget")
		} else if financial.CostVariance < 0 {
			points = append(points, fmt.Sprintf("Overall spending finished %d under budget", -financial.CostVariance))
		}
	}

	// Participation
	if participation.TotalActualParticipants > participation.TotalExpectedParticipants && participation.TotalExpectedParticipants > 0 {
		points = append(points, "Turnout exceeded expectations")
	} else if participation.ParticipationRate >= overallExcellentMin && participation.TotalExpectedParticipants > 0 {
		points = append(points, fmt.Sprintf("Participation rate reached %d%%", participation.ParticipationRate))
	}

	// Documentation
	if summary.CompletedTasks > 0 && fullyDocumented(performances) {
		points = append(points, "Every submitted report includes evidence and narrative detail")
	}

	return points
}

func fullyDocumented(performances []TaskPerformance) bool {
	for _, perf := range performances {
		if perf.CompletionQuality > 0 && perf.CompletionQuality < 100 {
			return false
		}
	}
	return true
}

func recommendations(summary ActivitySummary, financial FinancialAnalysis, participation ParticipantAnalysis, performances []TaskPerformance) []string {
	recs := []string{}

	// Financial: flag the absolute overrun even when the percentage form is
	// suppressed by a zero estimate.
	if financial.CostVariance > 0 &&
		(financial.CostVariancePercent > riskMediumVariancePct || financial.TotalEstimatedCost == 0) {
		recs = append(recs, fmt.Sprintf("Review spending controls: actual cost exceeded estimates by %d", financial.CostVariance))
	}

	// Participation
	if participation.TotalExpectedParticipants > 0 && participation.ParticipationRate < overallGoodMin {
		recs = append(recs, fmt.Sprintf("Strengthen community mobilization: only %d%% of expected participants attended", participation.ParticipationRate))
	}

	// Completion
	if summary.TotalTasks > 0 && summary.CompletionRate < overallGoodMin {
		pending := summary.TotalTasks - summary.CompletedTasks
		recs = append(recs, fmt.Sprintf("Follow up on %d pending task report(s)", pending))
	}

	// Documentation: a filed report with a quality score below 100 is missing
	// evidence, narrative detail, or both.
	undocumented := 0
	for _, perf := range performances {
		if perf.CompletionQuality > 0 && perf.CompletionQuality < 100 {
			undocumented++
		}
	}
	if undocumented > 0 {
		recs = append(recs, fmt.Sprintf("Improve documentation on %d submitted report(s): attach evidence and describe challenges", undocumented))
	}

	return recs
}

func allWithinBudget(financial FinancialAnalysis) bool {
	for _, entry := range financial.CostBreakdown {
		if entry.Variance > 0 {
			return false
		}
	}
	return true
}
