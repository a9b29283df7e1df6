package analytics

import (
	"sort"

	"github.com/umuganda/community-activity-api/internal/models"
)

// Aggregate groups reports by the activity reachable through each report's
// task and accumulates per-activity totals. Orphaned reports whose task or
// activity could not be resolved by the store are dropped; one bad row must
// not blank the whole result. Groups are sorted by activity date, most
// recent first, which governs all downstream list output.
func Aggregate(reports []models.Report) []ActivityGroup {
	byActivity := make(map[uint64]*ActivityGroup)

	for _, report := range reports {
		if report.Task.ID == 0 || report.Task.Activity.ID == 0 {
			// Orphaned report: upstream data-quality issue, skip it.
			continue
		}

		group, ok := byActivity[report.Task.ActivityID]
		if !ok {
			group = &ActivityGroup{Activity: report.Task.Activity}
			byActivity[report.Task.ActivityID] = group
		}

		group.Reports = append(group.Reports, report)
		group.Totals.EstimatedCost += report.Task.EstimatedCost
		group.Totals.ActualCost += report.Task.ActualCost
		group.Totals.ExpectedParticipants += report.Task.ExpectedParticipants
		group.Totals.ActualParticipants += report.Task.ActualParticipants
		group.Totals.ExpectedFinancialImpact += report.Task.ExpectedFinancialImpact
		group.Totals.ActualFinancialImpact += report.Task.ActualFinancialImpact
	}

	groups := make([]ActivityGroup, 0, len(byActivity))
	for _, group := range byActivity {
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		di, dj := groups[i].Activity.Date, groups[j].Activity.Date
		if di.Equal(dj) {
			// Stable tie-break so repeated runs produce identical output.
			return groups[i].Activity.ID > groups[j].Activity.ID
		}
		return di.After(dj)
	})

	return groups
}
