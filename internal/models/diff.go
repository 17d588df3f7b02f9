package models

// Severity classifies how much a divergence matters for behavioral parity.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityMajor      Severity = "major"
	SeverityMinor      Severity = "minor"
	SeverityFormatting Severity = "formatting"
)

var severityRank = map[Severity]int{
	SeverityFormatting: 0,
	SeverityMinor:      1,
	SeverityMajor:      2,
	SeverityCritical:   3,
}

// AtLeast returns true if s is at or above the target severity.
func (s Severity) AtLeast(target Severity) bool {
	return severityRank[s] >= severityRank[target]
}

// Category identifies the kind of player command that produced a divergence.
// Classification is a fixed taxonomy dispatched from the command text so that
// it stays exhaustive and testable.
type Category string

const (
	CategoryInitial            Category = "initial_state"
	CategoryNavigation         Category = "navigation"
	CategoryObjectManipulation Category = "object_manipulation"
	CategoryRoomDescription    Category = "room_description"
	CategoryInventory          Category = "inventory"
	CategoryExamination        Category = "examination"
	CategoryCombat             Category = "combat"
	CategoryInteraction        Category = "interaction"
	CategoryMeta               Category = "meta"
	CategoryParserResponse     Category = "parser_response"
)

// DiffEntry records one detected divergence between the reference and
// candidate transcripts at a given command index.
type DiffEntry struct {
	Index      int      `json:"index"`
	Command    string   `json:"command"`
	Expected   string   `json:"expected"`
	Actual     string   `json:"actual"`
	Similarity float64  `json:"similarity"`
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
}

// SeveritySummary counts differences per severity.
type SeveritySummary struct {
	Critical   int `json:"critical"`
	Major      int `json:"major"`
	Minor      int `json:"minor"`
	Formatting int `json:"formatting"`
}

// Total returns the sum across all severities.
func (s SeveritySummary) Total() int {
	return s.Critical + s.Major + s.Minor + s.Formatting
}

// Add increments the count for the given severity.
func (s *SeveritySummary) Add(sev Severity) {
	switch sev {
	case SeverityCritical:
		s.Critical++
	case SeverityMajor:
		s.Major++
	case SeverityMinor:
		s.Minor++
	case SeverityFormatting:
		s.Formatting++
	}
}

// DiffReport is the complete result of comparing one transcript pair.
//
// Invariants: ExactMatches + CloseMatches + len(Differences) == TotalCommands,
// and the summary counts sum to len(Differences).
type DiffReport struct {
	ReferenceID   string          `json:"reference_id"`
	CandidateID   string          `json:"candidate_id"`
	TotalCommands int             `json:"total_commands"`
	ExactMatches  int             `json:"exact_matches"`
	CloseMatches  int             `json:"close_matches"`
	Differences   []DiffEntry     `json:"differences"`
	ParityScore   float64         `json:"parity_score"`
	Summary       SeveritySummary `json:"summary"`
}

// Perfect reports whether the pair matched on every command.
func (r *DiffReport) Perfect() bool {
	return len(r.Differences) == 0 && r.ParityScore >= 100
}

// ComputeParityScore is the parity formula shared by the comparator and the
// batch aggregator: matched commands over total, as a percentage. Zero total
// commands is vacuously perfect.
func ComputeParityScore(exactMatches, closeMatches, totalCommands int) float64 {
	if totalCommands == 0 {
		return 100.0
	}
	return float64(exactMatches+closeMatches) / float64(totalCommands) * 100.0
}
