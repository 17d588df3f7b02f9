package analyzer

import (
	"fmt"
	"sort"

	"github.com/jsredmond/zorkparity/internal/models"
)

// subsystemTargets maps a subsystem to the source area a fix most likely
// lands in. These are hints for triage, not authoritative file lists.
var subsystemTargets = map[models.Subsystem][]string{
	models.SubsystemParser:    {"parser"},
	models.SubsystemActions:   {"actions"},
	models.SubsystemObjects:   {"objects"},
	models.SubsystemRooms:     {"rooms"},
	models.SubsystemInventory: {"inventory"},
	models.SubsystemPuzzles:   {"puzzles"},
	models.SubsystemCombat:    {"combat"},
	models.SubsystemDaemons:   {"daemons"},
	models.SubsystemScoring:   {"scoring"},
	models.SubsystemLighting:  {"lighting"},
	models.SubsystemMessaging: {"messages"},
}

var severityWeight = map[models.Severity]float64{
	models.SeverityCritical:   1.0,
	models.SeverityMajor:      0.8,
	models.SeverityMinor:      0.5,
	models.SeverityFormatting: 0.2,
}

// buildRecommendation derives a fix recommendation for one analyzed
// difference. totalCommands sizes the estimated parity improvement: fixing
// one divergence recovers at most one command's share of the score.
func buildRecommendation(d models.DetailedDifference, rc models.RootCauseMap, totalCommands int) models.FixRecommendation {
	rec := models.FixRecommendation{
		Index: d.Entry.Index,
		Description: fmt.Sprintf("%s (%s): %s",
			rc.Primary.Issue, rc.Primary.Subsystem, rc.Primary.SuggestedFix),
		Priority:       derivePriority(d.Entry.Severity, rc.Confidence),
		Effort:         deriveEffort(d.Entry.Similarity),
		RegressionRisk: deriveRisk(len(d.Subsystems)),
		TargetFiles:    subsystemTargets[rc.Primary.Subsystem],
	}

	if totalCommands > 0 {
		rec.EstimatedImprovement = 100.0 / float64(totalCommands) * severityWeight[d.Entry.Severity]
	}
	return rec
}

func derivePriority(sev models.Severity, conf float64) models.FixPriority {
	switch sev {
	case models.SeverityCritical:
		if conf >= 0.5 {
			return models.PriorityCritical
		}
		return models.PriorityHigh
	case models.SeverityMajor:
		if conf >= 0.5 {
			return models.PriorityHigh
		}
		return models.PriorityMedium
	case models.SeverityMinor:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// deriveEffort estimates work from similarity: near-identical outputs mean a
// wording tweak, dissimilar ones a behavioral rewrite.
func deriveEffort(similarity float64) models.FixEffort {
	switch {
	case similarity >= 0.9:
		return models.EffortMinimal
	case similarity >= 0.7:
		return models.EffortSmall
	case similarity >= 0.4:
		return models.EffortModerate
	default:
		return models.EffortLarge
	}
}

// deriveRisk grows with the number of subsystems a change could ripple through.
func deriveRisk(subsystemCount int) models.FixRisk {
	switch {
	case subsystemCount <= 3:
		return models.RiskLow
	case subsystemCount <= 4:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// rankRecommendations orders by priority, then estimated improvement, then
// index. The ordering is total, so identical inputs always rank identically.
func rankRecommendations(recs []models.FixRecommendation) {
	sort.SliceStable(recs, func(a, b int) bool {
		if recs[a].Priority.Rank() != recs[b].Priority.Rank() {
			return recs[a].Priority.Rank() > recs[b].Priority.Rank()
		}
		if recs[a].EstimatedImprovement != recs[b].EstimatedImprovement {
			return recs[a].EstimatedImprovement > recs[b].EstimatedImprovement
		}
		return recs[a].Index < recs[b].Index
	})
}

// overallRisk summarizes the report-level regression exposure.
func overallRisk(summary models.SeveritySummary) models.FixRisk {
	switch {
	case summary.Critical > 2:
		return models.RiskHigh
	case summary.Critical > 0 || summary.Major > 3:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
