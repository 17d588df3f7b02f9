package reporting

import (
	"fmt"

	"github.com/jsredmond/zorkparity/internal/models"
)

// InterpretParity returns a plain-language label for a parity score (0-100).
func InterpretParity(score float64) string {
	switch {
	case score >= 100:
		return "Perfect parity"
	case score >= 99:
		return "Near-perfect (>=99%)"
	case score >= 95:
		return "Strong (95-99%)"
	case score >= 80:
		return "Needs work (80-95%)"
	default:
		return "Divergent (<80%)"
	}
}

// InterpretSeverity explains what a severity grade means for players.
func InterpretSeverity(s models.Severity) string {
	switch s {
	case models.SeverityCritical:
		return "Behavioral break: the engines disagree about what happened."
	case models.SeverityMajor:
		return "Substantial divergence: same event, clearly different text or state."
	case models.SeverityMinor:
		return "Small wording drift within an accepted family."
	case models.SeverityFormatting:
		return "Whitespace or layout only; no player-visible meaning changed."
	default:
		return string(s)
	}
}

// InterpretSeedVariations explains a seed-consistency outcome.
func InterpretSeedVariations(count int) string {
	if count == 0 {
		return "Outputs are identical across every seed tested."
	}
	return fmt.Sprintf("Nondeterminism detected: %d sequence run(s) changed under a different seed. Align RNG consumption between the engines.", count)
}

// InterpretLevel gives the one-line meaning of a certification level.
func InterpretLevel(level models.CertificationLevel) string {
	switch level {
	case models.CertificationPerfect:
		return "All four criteria at 100: the candidate is indistinguishable from the reference on this corpus."
	case models.CertificationAdvanced:
		return "Three of four criteria passed; one area needs attention before full certification."
	case models.CertificationStandard:
		return "Half the criteria passed; parity work remains."
	case models.CertificationBasic:
		return "Only one criterion passed; substantial divergence remains."
	default:
		return "No criteria passed; the implementations disagree broadly."
	}
}
