// Package analyzer turns a diff report into actionable engineering signal:
// per-difference state snapshots, a difference-type classification, subsystem
// attribution, root causes with confidence scores, and a ranked list of fix
// recommendations. Analysis is deterministic: the same report always yields
// the same causes in the same order.
package analyzer

import (
	"github.com/jsredmond/zorkparity/internal/models"
)

// Analyzer enriches diff reports. The zero value is not usable; construct
// with New.
type Analyzer struct{}

// New creates an analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// AnalyzeReport produces one DetailedDifference and RootCauseMap per diff
// entry, plus globally ranked fix recommendations and an overall risk call.
// State extraction is advisory and degrades to empty snapshots; analysis
// itself never fails.
func (a *Analyzer) AnalyzeReport(report *models.DiffReport, reference, candidate *models.Transcript, sequenceID string) *models.DeepAnalysisResult {
	result := &models.DeepAnalysisResult{
		SequenceID:  sequenceID,
		OverallRisk: overallRisk(report.Summary),
	}

	// First pass: classify everything so systemic overlap is visible to
	// root-cause inference.
	typeCounts := make(map[models.DifferenceType]int)
	detailed := make([]models.DetailedDifference, 0, len(report.Differences))
	for _, entry := range report.Differences {
		d := models.DetailedDifference{
			Entry:    entry,
			Snapshot: snapshotFor(entry, reference, candidate),
			Type:     classifyDifference(entry),
			Context:  contextFor(entry, reference, sequenceID),
		}
		d.Subsystems = mapSubsystems(entry.Command, d.Type)
		typeCounts[d.Type]++
		detailed = append(detailed, d)
	}
	result.Differences = detailed

	for _, d := range detailed {
		rc := inferRootCause(d, typeCounts)
		result.RootCauses = append(result.RootCauses, rc)
		result.Recommendations = append(result.Recommendations,
			buildRecommendation(d, rc, report.TotalCommands))
	}

	rankRecommendations(result.Recommendations)
	return result
}

// snapshotFor prefers the reference output (the state the candidate should
// have reached); a missing reference entry falls back to the candidate's.
func snapshotFor(entry models.DiffEntry, reference, candidate *models.Transcript) models.GameStateSnapshot {
	if e := reference.Entry(entry.Index); e != nil && e.Output != "" {
		return ExtractSnapshot(e.Output)
	}
	if e := candidate.Entry(entry.Index); e != nil {
		return ExtractSnapshot(e.Output)
	}
	return models.GameStateSnapshot{}
}

func contextFor(entry models.DiffEntry, reference *models.Transcript, sequenceID string) models.AnalysisContext {
	ctx := models.AnalysisContext{SequenceID: sequenceID}
	if e := reference.Entry(entry.Index); e != nil {
		ctx.Turn = e.Turn
	}
	if prev := reference.Entry(entry.Index - 1); prev != nil {
		ctx.PreviousCommand = prev.Command
	}
	return ctx
}
