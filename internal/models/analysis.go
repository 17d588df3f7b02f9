package models

// DifferenceType is the analyzer's classification of what kind of behavior a
// divergence represents, as opposed to Severity which says how much it matters.
type DifferenceType string

const (
	DiffTypeMessageContent     DifferenceType = "message_content"
	DiffTypeStateLogic         DifferenceType = "state_logic"
	DiffTypeObjectBehavior     DifferenceType = "object_behavior"
	DiffTypeParserResponse     DifferenceType = "parser_response"
	DiffTypeConditionalLogic   DifferenceType = "conditional_logic"
	DiffTypeSequenceDependency DifferenceType = "sequence_dependency"
	DiffTypeTiming             DifferenceType = "timing"
	DiffTypeRandomBehavior     DifferenceType = "random_behavior"
)

// Subsystem names a game-engine subsystem that a divergence can be attributed to.
type Subsystem string

const (
	SubsystemParser    Subsystem = "parser"
	SubsystemActions   Subsystem = "actions"
	SubsystemObjects   Subsystem = "objects"
	SubsystemRooms     Subsystem = "rooms"
	SubsystemInventory Subsystem = "inventory"
	SubsystemPuzzles   Subsystem = "puzzles"
	SubsystemCombat    Subsystem = "combat"
	SubsystemDaemons   Subsystem = "daemons"
	SubsystemScoring   Subsystem = "scoring"
	SubsystemLighting  Subsystem = "lighting"
	SubsystemMessaging Subsystem = "messaging"
)

// GameStateSnapshot is a best-effort reconstruction of player-visible state
// from output text. It is advisory telemetry: any field may be empty or nil
// when the output did not match the expected patterns.
type GameStateSnapshot struct {
	Location  string   `json:"location,omitempty"`
	Inventory []string `json:"inventory,omitempty"`
	Score     *int     `json:"score,omitempty"`
	Moves     *int     `json:"moves,omitempty"`
}

// AnalysisContext carries the surrounding-sequence facts used during
// root-cause inference.
type AnalysisContext struct {
	SequenceID      string `json:"sequence_id,omitempty"`
	PreviousCommand string `json:"previous_command,omitempty"`
	Turn            int    `json:"turn"`
}

// DetailedDifference enriches one DiffEntry with state, classification, and
// context. The enrichment is one-way: it is never written back into the
// DiffReport.
type DetailedDifference struct {
	Entry      DiffEntry         `json:"entry"`
	Snapshot   GameStateSnapshot `json:"snapshot"`
	Type       DifferenceType    `json:"type"`
	Subsystems []Subsystem       `json:"subsystems"`
	Context    AnalysisContext   `json:"context"`
}

// RootCause names the subsystem and issue kind the analyzer holds responsible
// for a divergence.
type RootCause struct {
	Subsystem    Subsystem `json:"subsystem"`
	Issue        string    `json:"issue"`
	Description  string    `json:"description"`
	SuggestedFix string    `json:"suggested_fix"`
}

// RootCauseMap pairs a primary cause with contributing factors and the
// analyzer's confidence in the attribution.
type RootCauseMap struct {
	Index        int       `json:"index"`
	Primary      RootCause `json:"primary"`
	Contributing []string  `json:"contributing,omitempty"`
	Confidence   float64   `json:"confidence"`
}

// FixPriority orders recommendations for remediation work.
type FixPriority string

const (
	PriorityCritical FixPriority = "critical"
	PriorityHigh     FixPriority = "high"
	PriorityMedium   FixPriority = "medium"
	PriorityLow      FixPriority = "low"
)

var priorityRank = map[FixPriority]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

// Rank returns the numeric ordering of a priority, higher is more urgent.
func (p FixPriority) Rank() int {
	return priorityRank[p]
}

// FixEffort estimates how much work a recommendation implies.
type FixEffort string

const (
	EffortMinimal  FixEffort = "minimal"
	EffortSmall    FixEffort = "small"
	EffortModerate FixEffort = "moderate"
	EffortLarge    FixEffort = "large"
)

// FixRisk estimates how likely a fix is to regress other behavior.
type FixRisk string

const (
	RiskLow    FixRisk = "low"
	RiskMedium FixRisk = "medium"
	RiskHigh   FixRisk = "high"
)

// FixRecommendation is a derived, prioritized remediation suggestion for one
// divergence.
type FixRecommendation struct {
	Index                int         `json:"index"`
	Description          string      `json:"description"`
	Priority             FixPriority `json:"priority"`
	Effort               FixEffort   `json:"effort"`
	RegressionRisk       FixRisk     `json:"regression_risk"`
	TargetFiles          []string    `json:"target_files,omitempty"`
	EstimatedImprovement float64     `json:"estimated_improvement"`
}

// DeepAnalysisResult is the analyzer's full output for one diff report.
type DeepAnalysisResult struct {
	SequenceID      string               `json:"sequence_id,omitempty"`
	Differences     []DetailedDifference `json:"differences"`
	RootCauses      []RootCauseMap       `json:"root_causes"`
	Recommendations []FixRecommendation  `json:"recommendations"`
	OverallRisk     FixRisk              `json:"overall_risk"`
}
