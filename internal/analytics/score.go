package analytics

import (
	"math"
	"strings"

	"github.com/umuganda/community-activity-api/internal/models"
)

// ScoreTask computes the composite performance score, sub-scores, risk level
// and status bucket for one task. report may be nil: the task then scores on
// whatever actual figures it carries (zero when none were recorded) so that
// under-performance stays visible, and its risk is judged on the cost signal
// alone since completion quality cannot be assessed yet.
func ScoreTask(task models.Task, report *models.Report) TaskPerformance {
	costVariancePct := ratioPercent(task.ActualCost-task.EstimatedCost, task.EstimatedCost)

	costEfficiency := 100 - abs(costVariancePct)
	if costEfficiency < 0 {
		costEfficiency = 0
	}

	engagement := engagementScore(task)
	quality := qualityScore(report)

	score := int(math.Round(float64(
		costEfficiency*weightCostEfficiency+
			engagement*weightEngagement+
			quality*weightQuality) / 100))

	return TaskPerformance{
		TaskID:                task.ID,
		TaskTitle:             task.Title,
		PerformanceScore:      score,
		CostEfficiency:        costEfficiency,
		ParticipantEngagement: engagement,
		CompletionQuality:     quality,
		RiskLevel:             riskLevel(score, costVariancePct, report != nil),
		Status:                statusBucket(score),
	}
}

// engagementScore rewards turnout relative to expectation, capped at 100.
// With no expectation set, any turnout at all counts as full engagement.
func engagementScore(task models.Task) int {
	if task.ExpectedParticipants > 0 {
		pct := ratioPercent(int64(task.ActualParticipants), int64(task.ExpectedParticipants))
		return clampPercent(pct)
	}
	if task.ActualParticipants > 0 {
		return 100
	}
	return 0
}

// qualityScore rewards complete documentation, not just task closure: the
// report itself, attached evidence, and a filled narrative each contribute a
// fixed share.
func qualityScore(report *models.Report) int {
	if report == nil || report.ID == 0 {
		return 0
	}

	quality := qualityReportFiled
	if len(report.EvidenceURLs) > 0 {
		quality += qualityEvidencePoints
	}
	if strings.TrimSpace(report.Comment) != "" || strings.TrimSpace(report.Challenges) != "" {
		quality += qualityNarrative
	}
	return quality
}

// riskLevel classifies a task. Unreported tasks are judged on cost variance
// alone: their composite score is structurally depressed by the missing
// report, and treating that as high risk would flag every pending task.
func riskLevel(score, costVariancePct int, hasReport bool) RiskLevel {
	variance := abs(costVariancePct)

	if !hasReport {
		switch {
		case variance > riskHighVariancePct:
			return RiskHigh
		case variance > riskMediumVariancePct:
			return RiskMedium
		default:
			return RiskLow
		}
	}

	switch {
	case score < riskHighScoreBelow || variance > riskHighVariancePct:
		return RiskHigh
	case score < riskMediumScoreBelow || variance > riskMediumVariancePct:
		return RiskMedium
	default:
		return RiskLow
	}
}

func statusBucket(score int) PerformanceStatus {
	switch {
	case score >= statusExcellentMin:
		return PerformanceExcellent
	case score >= statusGoodMin:
		return PerformanceGood
	case score >= statusAverageMin:
		return PerformanceAverage
	default:
		return PerformanceNeedsImprovement
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
