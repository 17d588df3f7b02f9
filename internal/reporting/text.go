package reporting

import (
	"fmt"
	"strings"

	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/mattn/go-runewidth"
)

// renderTable lays out rows with runewidth-aware padding so game text with
// wide runes still lines up.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, max, "...")
}

func diffReportText(r *models.DiffReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Parity Report: %s vs %s\n\n", r.ReferenceID, r.CandidateID)
	fmt.Fprintf(&b, "Parity Score: %.2f%% — %s\n", r.ParityScore, InterpretParity(r.ParityScore))
	fmt.Fprintf(&b, "Commands:     %d total, %d exact, %d close, %d divergent\n",
		r.TotalCommands, r.ExactMatches, r.CloseMatches, len(r.Differences))
	fmt.Fprintf(&b, "Severity:     %d critical, %d major, %d minor, %d formatting\n",
		r.Summary.Critical, r.Summary.Major, r.Summary.Minor, r.Summary.Formatting)

	if len(r.Differences) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	rows := make([][]string, 0, len(r.Differences))
	for _, d := range r.Differences {
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Index),
			string(d.Severity),
			string(d.Category),
			truncate(d.Command, 28),
			fmt.Sprintf("%.2f", d.Similarity),
		})
	}
	b.WriteString(renderTable([]string{"IDX", "SEVERITY", "CATEGORY", "COMMAND", "SIMILARITY"}, rows))

	for _, d := range r.Differences {
		fmt.Fprintf(&b, "\n[%d] %s — %s\n", d.Index, d.Command, InterpretSeverity(d.Severity))
		fmt.Fprintf(&b, "  expected: %s\n", truncate(d.Expected, 100))
		fmt.Fprintf(&b, "  actual:   %s\n", truncate(d.Actual, 100))
	}
	return b.String()
}

func batchText(b *models.BatchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Batch Result\n\n")
	fmt.Fprintf(&sb, "Aggregate Parity: %.2f%% — %s\n", b.AggregateParity, InterpretParity(b.AggregateParity))
	fmt.Fprintf(&sb, "Sequences:        %d total, %d succeeded, %d failed\n", b.TotalSequences, b.Succeeded, b.Failed)
	fmt.Fprintf(&sb, "Differences:      %d\n", b.TotalDifferences)
	if b.Stopped {
		sb.WriteString("Run stopped early after a failure.\n")
	}
	if b.ReferenceNote != "" {
		fmt.Fprintf(&sb, "Note: %s\n", b.ReferenceNote)
	}

	if len(b.Results) > 0 {
		sb.WriteString("\n")
		rows := make([][]string, 0, len(b.Results))
		for _, res := range b.Results {
			status := "ok"
			if res.Failed {
				status = "FAILED"
			}
			rows = append(rows, []string{
				res.SequenceID,
				fmt.Sprintf("%.2f", res.ParityScore),
				fmt.Sprintf("%d", res.DifferenceCount),
				fmt.Sprintf("%d", res.CommandCount),
				status,
			})
		}
		sb.WriteString(renderTable([]string{"SEQUENCE", "PARITY", "DIFFS", "COMMANDS", "STATUS"}, rows))
	}

	if len(b.WorstSequences) > 0 {
		sb.WriteString("\nWorst sequences:\n")
		for i, res := range b.WorstSequences {
			fmt.Fprintf(&sb, "  %d. %s (%d differences, %.2f%% parity)\n", i+1, res.SequenceID, res.DifferenceCount, res.ParityScore)
		}
	}

	for _, res := range b.Results {
		if res.Failed {
			fmt.Fprintf(&sb, "\n[FAILED] %s: %s\n", res.SequenceID, res.ErrorMsg)
		}
	}
	return sb.String()
}

func validationText(v *models.PerfectParityValidation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Parity Certification\n\n")
	fmt.Fprintf(&b, "Level:          %s\n", v.Certification.Level)
	fmt.Fprintf(&b, "Aggregate:      %.2f%% — %s\n", v.AggregateParity, InterpretParity(v.AggregateParity))
	fmt.Fprintf(&b, "Sustainability: %.1f\n", v.Certification.SustainabilityScore)

	b.WriteString("\n")
	rows := make([][]string, 0, len(v.Certification.Criteria))
	for _, c := range v.Certification.Criteria {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		rows = append(rows, []string{c.Name, status, fmt.Sprintf("%.1f", c.Score), c.Detail})
	}
	b.WriteString(renderTable([]string{"CRITERION", "STATUS", "SCORE", "DETAIL"}, rows))

	imperfect := 0
	for _, s := range v.Sequences {
		if !s.Perfect {
			imperfect++
		}
	}
	fmt.Fprintf(&b, "\nSequences: %d total, %d perfect, %d imperfect\n", len(v.Sequences), len(v.Sequences)-imperfect, imperfect)
	for _, s := range v.Sequences {
		if !s.Perfect {
			fmt.Fprintf(&b, "  - %s: %.2f%% (%d differences)", s.SequenceID, s.ParityScore, s.DifferenceCount)
			if s.ErrorMsg != "" {
				fmt.Fprintf(&b, " [%s]", s.ErrorMsg)
			}
			b.WriteString("\n")
		}
	}

	if len(v.SeedsTested) > 0 {
		fmt.Fprintf(&b, "\nSeeds tested: %v\n", v.SeedsTested)
		fmt.Fprintf(&b, "%s\n", InterpretSeedVariations(len(v.SeedVariations)))
		for _, sv := range v.SeedVariations {
			fmt.Fprintf(&b, "  - %s under seed %d: parity %.2f -> %.2f, diffs %d -> %d\n",
				sv.SequenceID, sv.Seed, sv.BaselineParity, sv.ObservedParity, sv.BaselineDiffs, sv.ObservedDiffs)
		}
		if v.SeedStats != nil && v.SeedStats.NumBootstraps > 0 {
			fmt.Fprintf(&b, "Per-seed parity: mean %.2f, stddev %.2f, %.0f%% CI [%.2f, %.2f]\n",
				v.SeedStats.Mean, v.SeedStats.StdDev, v.SeedStats.ConfidenceLevel*100, v.SeedStats.Lower, v.SeedStats.Upper)
		}
	}

	if len(v.Regressions) > 0 {
		b.WriteString("\nRegressions:\n")
		for _, r := range v.Regressions {
			fmt.Fprintf(&b, "  - %s: %.2f -> %.2f (%s, -%.2f points)\n",
				r.SequenceID, r.BaselineScore, r.CurrentScore, r.Severity, r.Drop)
		}
	}

	b.WriteString("\nRecommendations:\n")
	for _, rec := range v.Certification.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}
	return b.String()
}

func analysisText(a *models.DeepAnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Deep Analysis")
	if a.SequenceID != "" {
		fmt.Fprintf(&b, ": %s", a.SequenceID)
	}
	fmt.Fprintf(&b, "\n\nDifferences analyzed: %d\n", len(a.Differences))
	fmt.Fprintf(&b, "Overall regression risk: %s\n", a.OverallRisk)

	for i, d := range a.Differences {
		rc := a.RootCauses[i]
		fmt.Fprintf(&b, "\n[%d] %s (%s)\n", d.Entry.Index, d.Entry.Command, d.Type)
		fmt.Fprintf(&b, "  subsystems: %s\n", joinSubsystems(d.Subsystems))
		fmt.Fprintf(&b, "  root cause: %s — %s (confidence %.2f)\n", rc.Primary.Issue, rc.Primary.Subsystem, rc.Confidence)
		fmt.Fprintf(&b, "  fix:        %s\n", rc.Primary.SuggestedFix)
		for _, c := range rc.Contributing {
			fmt.Fprintf(&b, "  factor:     %s\n", c)
		}
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("\nRecommendations (ranked):\n")
		rows := make([][]string, 0, len(a.Recommendations))
		for _, rec := range a.Recommendations {
			rows = append(rows, []string{
				fmt.Sprintf("%d", rec.Index),
				string(rec.Priority),
				string(rec.Effort),
				string(rec.RegressionRisk),
				fmt.Sprintf("+%.2f%%", rec.EstimatedImprovement),
				truncate(rec.Description, 60),
			})
		}
		b.WriteString(renderTable([]string{"IDX", "PRIORITY", "EFFORT", "RISK", "IMPROVES", "DESCRIPTION"}, rows))
	}
	return b.String()
}

func joinSubsystems(subs []models.Subsystem) string {
	parts := make([]string, len(subs))
	for i, s := range subs {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
