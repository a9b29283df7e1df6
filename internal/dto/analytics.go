package dto

import (
	"time"

	"github.com/umuganda/community-activity-api/internal/analytics"
	"github.com/umuganda/community-activity-api/internal/models"
)

// ActivityGroupDTO is the list-level grouped view returned to presentation
// consumers: one row per activity with its accumulated report totals.
type ActivityGroupDTO struct {
	ActivityID     uint64                `json:"activity_id"`
	Title          string                `json:"title"`
	Date           time.Time             `json:"date"`
	Status         models.ActivityStatus `json:"status"`
	ReportCount    int                   `json:"report_count"`
	HasEvidence    bool                  `json:"has_evidence"`
	Totals         analytics.GroupTotals `json:"totals"`
	CostVariance   int64                 `json:"cost_variance"`
	Participation  int                   `json:"participation_variance"`
	ImpactVariance int64                 `json:"impact_variance"`
}

// ToActivityGroupDTO converts an aggregated group to its list view.
func ToActivityGroupDTO(group analytics.ActivityGroup) ActivityGroupDTO {
	hasEvidence := false
	for _, report := range group.Reports {
		if len(report.EvidenceURLs) > 0 {
			hasEvidence = true
			break
		}
	}

	return ActivityGroupDTO{
		ActivityID:     group.Activity.ID,
		Title:          group.Activity.Title,
		Date:           group.Activity.Date,
		Status:         group.Activity.Status,
		ReportCount:    len(group.Reports),
		HasEvidence:    hasEvidence,
		Totals:         group.Totals,
		CostVariance:   group.Totals.ActualCost - group.Totals.EstimatedCost,
		Participation:  group.Totals.ActualParticipants - group.Totals.ExpectedParticipants,
		ImpactVariance: group.Totals.ActualFinancialImpact - group.Totals.ExpectedFinancialImpact,
	}
}

// ToActivityGroupDTOs converts a slice of groups, preserving order.
func ToActivityGroupDTOs(groups []analytics.ActivityGroup) []ActivityGroupDTO {
	dtos := make([]ActivityGroupDTO, len(groups))
	for i, group := range groups {
		dtos[i] = ToActivityGroupDTO(group)
	}
	return dtos
}
