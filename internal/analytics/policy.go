package analytics

// Policy constants for scoring and classification. The values mirror the
// categorical labels shown to field coordinators; treat them as tunable
// product policy rather than engine logic.
const (
	// Weighted mean of the three sub-scores. Engagement is weighted highest
	// because under-participation is the leading indicator of community
	// activity failure.
	weightCostEfficiency = 30
	weightEngagement     = 40
	weightQuality        = 30

	// Completion quality components.
	qualityReportFiled    = 40
	qualityEvidencePoints = 30
	qualityNarrative      = 30

	// Risk classification bounds.
	riskHighScoreBelow    = 50
	riskMediumScoreBelow  = 75
	riskHighVariancePct   = 25
	riskMediumVariancePct = 10

	// Performance status buckets applied to the composite score.
	statusExcellentMin = 85
	statusGoodMin      = 70
	statusAverageMin   = 50

	// Overall activity status bounds on completion/participation rates.
	overallExcellentMin = 90
	overallGoodMin      = 70
	overallAverageMin   = 50
)
