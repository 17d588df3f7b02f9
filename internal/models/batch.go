package models

// SequenceResult is the outcome of recording and comparing one command
// sequence against both engines.
type SequenceResult struct {
	SequenceID      string      `json:"sequence_id"`
	Name            string      `json:"name"`
	ParityScore     float64     `json:"parity_score"`
	CommandCount    int         `json:"command_count"`
	DifferenceCount int         `json:"difference_count"`
	DurationMs      int64       `json:"duration_ms"`
	Failed          bool        `json:"failed"`
	ErrorMsg        string      `json:"error_msg,omitempty"`
	Note            string      `json:"note,omitempty"`
	Report          *DiffReport `json:"report,omitempty"`
}

// BatchResult aggregates per-sequence results across one batch run. Results
// are ordered by input order regardless of which worker finished first.
type BatchResult struct {
	TotalSequences   int              `json:"total_sequences"`
	Succeeded        int              `json:"succeeded"`
	Failed           int              `json:"failed"`
	AggregateParity  float64          `json:"aggregate_parity"`
	TotalDifferences int              `json:"total_differences"`
	WorstSequences   []SequenceResult `json:"worst_sequences"`
	Results          []SequenceResult `json:"results"`
	DurationMs       int64            `json:"duration_ms"`
	Stopped          bool             `json:"stopped,omitempty"`
	ReferenceNote    string           `json:"reference_note,omitempty"`
}

// WeightedParity computes the command-count-weighted mean of per-sequence
// parity scores. Weighting by command count keeps a trivial 2-command sequence
// from diluting the signal of a 50-command one. Sequences with zero commands
// contribute nothing to either side of the ratio.
func WeightedParity(results []SequenceResult) float64 {
	var weightedSum, totalCommands float64
	for _, r := range results {
		weightedSum += r.ParityScore * float64(r.CommandCount)
		totalCommands += float64(r.CommandCount)
	}
	if totalCommands == 0 {
		return 100.0
	}
	return weightedSum / totalCommands
}
