package analytics

import (
	"strings"
	"time"
)

// Criteria is the set of optional, conjunctive filters applied to aggregated
// activity groups. A nil field means no constraint.
type Criteria struct {
	ActivityID  *uint64
	Query       string
	DateFrom    *time.Time
	DateTo      *time.Time
	HasEvidence *bool
	CostMin     *int64
	CostMax     *int64
	ParticipMin *int
	ParticipMax *int
	TeamID      *uint64
}

// Filter returns the groups matching every provided criterion. The input
// slice is never mutated; the result is a fresh view.
func Filter(groups []ActivityGroup, criteria Criteria) []ActivityGroup {
	filtered := make([]ActivityGroup, 0, len(groups))
	for _, group := range groups {
		if matches(group, criteria) {
			filtered = append(filtered, group)
		}
	}
	return filtered
}

func matches(group ActivityGroup, c Criteria) bool {
	if c.ActivityID != nil && group.Activity.ID != *c.ActivityID {
		return false
	}
	if c.Query != "" && !matchesQuery(group, c.Query) {
		return false
	}
	if c.DateFrom != nil && group.Activity.Date.Before(*c.DateFrom) {
		return false
	}
	if c.DateTo != nil && group.Activity.Date.After(*c.DateTo) {
		return false
	}
	if c.HasEvidence != nil && groupHasEvidence(group) != *c.HasEvidence {
		return false
	}
	if c.CostMin != nil && group.Totals.ActualCost < *c.CostMin {
		return false
	}
	if c.CostMax != nil && group.Totals.ActualCost > *c.CostMax {
		return false
	}
	if c.ParticipMin != nil && group.Totals.ActualParticipants < *c.ParticipMin {
		return false
	}
	if c.ParticipMax != nil && group.Totals.ActualParticipants > *c.ParticipMax {
		return false
	}
	if c.TeamID != nil && !groupHasTeam(group, *c.TeamID) {
		return false
	}
	return true
}

// matchesQuery performs a case-insensitive substring match against the
// activity title/description and every contained task title/description.
func matchesQuery(group ActivityGroup, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(group.Activity.Title), q) ||
		strings.Contains(strings.ToLower(group.Activity.Description), q) {
		return true
	}
	for _, report := range group.Reports {
		if strings.Contains(strings.ToLower(report.Task.Title), q) ||
			strings.Contains(strings.ToLower(report.Task.Description), q) {
			return true
		}
	}
	return false
}

func groupHasEvidence(group ActivityGroup) bool {
	for _, report := range group.Reports {
		if len(report.EvidenceURLs) > 0 {
			return true
		}
	}
	return false
}

func groupHasTeam(group ActivityGroup, teamID uint64) bool {
	for _, report := range group.Reports {
		if report.Task.TeamID == teamID {
			return true
		}
	}
	return false
}
