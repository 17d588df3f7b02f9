package reporting

import (
	"fmt"
	"strings"

	"github.com/jsredmond/zorkparity/internal/models"
)

func mdTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
}

func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func diffReportMarkdown(r *models.DiffReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Parity Report: %s vs %s\n\n", r.ReferenceID, r.CandidateID)
	fmt.Fprintf(&b, "**Parity score: %.2f%%** — %s\n\n", r.ParityScore, InterpretParity(r.ParityScore))
	fmt.Fprintf(&b, "- Commands: %d total, %d exact, %d close, %d divergent\n",
		r.TotalCommands, r.ExactMatches, r.CloseMatches, len(r.Differences))
	fmt.Fprintf(&b, "- Severity: %d critical, %d major, %d minor, %d formatting\n",
		r.Summary.Critical, r.Summary.Major, r.Summary.Minor, r.Summary.Formatting)

	if len(r.Differences) == 0 {
		return b.String()
	}

	b.WriteString("\n## Differences\n\n")
	rows := make([][]string, 0, len(r.Differences))
	for _, d := range r.Differences {
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Index),
			string(d.Severity),
			string(d.Category),
			mdEscape(d.Command),
			fmt.Sprintf("%.2f", d.Similarity),
		})
	}
	mdTable(&b, []string{"Index", "Severity", "Category", "Command", "Similarity"}, rows)

	for _, d := range r.Differences {
		fmt.Fprintf(&b, "\n### [%d] `%s`\n\n", d.Index, d.Command)
		fmt.Fprintf(&b, "%s\n\n", InterpretSeverity(d.Severity))
		fmt.Fprintf(&b, "Expected:\n\n```\n%s\n```\n\n", d.Expected)
		fmt.Fprintf(&b, "Actual:\n\n```\n%s\n```\n", d.Actual)
	}
	return b.String()
}

func batchMarkdown(b *models.BatchResult) string {
	var sb strings.Builder

	sb.WriteString("# Batch Result\n\n")
	fmt.Fprintf(&sb, "**Aggregate parity: %.2f%%** — %s\n\n", b.AggregateParity, InterpretParity(b.AggregateParity))
	fmt.Fprintf(&sb, "- Sequences: %d total, %d succeeded, %d failed\n", b.TotalSequences, b.Succeeded, b.Failed)
	fmt.Fprintf(&sb, "- Total differences: %d\n", b.TotalDifferences)
	if b.Stopped {
		sb.WriteString("- Run stopped early after a failure\n")
	}
	if b.ReferenceNote != "" {
		fmt.Fprintf(&sb, "- Note: %s\n", b.ReferenceNote)
	}

	if len(b.Results) > 0 {
		sb.WriteString("\n## Per-sequence results\n\n")
		rows := make([][]string, 0, len(b.Results))
		for _, res := range b.Results {
			status := "ok"
			if res.Failed {
				status = "**FAILED**"
			}
			rows = append(rows, []string{
				mdEscape(res.SequenceID),
				fmt.Sprintf("%.2f%%", res.ParityScore),
				fmt.Sprintf("%d", res.DifferenceCount),
				fmt.Sprintf("%d", res.CommandCount),
				status,
			})
		}
		mdTable(&sb, []string{"Sequence", "Parity", "Diffs", "Commands", "Status"}, rows)
	}

	if len(b.WorstSequences) > 0 {
		sb.WriteString("\n## Worst sequences\n\n")
		for i, res := range b.WorstSequences {
			fmt.Fprintf(&sb, "%d. %s — %d differences, %.2f%% parity\n", i+1, mdEscape(res.SequenceID), res.DifferenceCount, res.ParityScore)
		}
	}

	for _, res := range b.Results {
		if res.Failed {
			fmt.Fprintf(&sb, "\n> %s failed: %s\n", mdEscape(res.SequenceID), mdEscape(res.ErrorMsg))
		}
	}
	return sb.String()
}

func validationMarkdown(v *models.PerfectParityValidation) string {
	var b strings.Builder

	b.WriteString("# Parity Certification\n\n")
	fmt.Fprintf(&b, "**Level: %s** — %s\n\n", v.Certification.Level, InterpretLevel(v.Certification.Level))
	fmt.Fprintf(&b, "- Aggregate parity: %.2f%%\n", v.AggregateParity)
	fmt.Fprintf(&b, "- Sustainability score: %.1f\n", v.Certification.SustainabilityScore)

	b.WriteString("\n## Criteria\n\n")
	rows := make([][]string, 0, len(v.Certification.Criteria))
	for _, c := range v.Certification.Criteria {
		status := "pass"
		if !c.Passed {
			status = "**fail**"
		}
		rows = append(rows, []string{c.Name, status, fmt.Sprintf("%.1f", c.Score), mdEscape(c.Detail)})
	}
	mdTable(&b, []string{"Criterion", "Status", "Score", "Detail"}, rows)

	if len(v.SeedsTested) > 0 {
		b.WriteString("\n## Seed consistency\n\n")
		fmt.Fprintf(&b, "%s\n", InterpretSeedVariations(len(v.SeedVariations)))
		for _, sv := range v.SeedVariations {
			fmt.Fprintf(&b, "- %s under seed %d: parity %.2f -> %.2f\n", mdEscape(sv.SequenceID), sv.Seed, sv.BaselineParity, sv.ObservedParity)
		}
		if v.SeedStats != nil && v.SeedStats.NumBootstraps > 0 {
			fmt.Fprintf(&b, "\nPer-seed parity mean %.2f, stddev %.2f, %.0f%% CI [%.2f, %.2f]\n",
				v.SeedStats.Mean, v.SeedStats.StdDev, v.SeedStats.ConfidenceLevel*100, v.SeedStats.Lower, v.SeedStats.Upper)
		}
	}

	if len(v.Regressions) > 0 {
		b.WriteString("\n## Regressions\n\n")
		for _, r := range v.Regressions {
			fmt.Fprintf(&b, "- %s: %.2f -> %.2f (%s)\n", mdEscape(r.SequenceID), r.BaselineScore, r.CurrentScore, r.Severity)
		}
	}

	b.WriteString("\n## Recommendations\n\n")
	for _, rec := range v.Certification.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}

func analysisMarkdown(a *models.DeepAnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Deep Analysis")
	if a.SequenceID != "" {
		fmt.Fprintf(&b, ": %s", a.SequenceID)
	}
	fmt.Fprintf(&b, "\n\n- Differences analyzed: %d\n- Overall regression risk: %s\n", len(a.Differences), a.OverallRisk)

	for i, d := range a.Differences {
		rc := a.RootCauses[i]
		fmt.Fprintf(&b, "\n## [%d] `%s` (%s)\n\n", d.Entry.Index, d.Entry.Command, d.Type)
		fmt.Fprintf(&b, "- Subsystems: %s\n", joinSubsystems(d.Subsystems))
		fmt.Fprintf(&b, "- Root cause: %s — %s (confidence %.2f)\n", rc.Primary.Issue, rc.Primary.Subsystem, rc.Confidence)
		fmt.Fprintf(&b, "- Suggested fix: %s\n", rc.Primary.SuggestedFix)
		for _, c := range rc.Contributing {
			fmt.Fprintf(&b, "- Contributing: %s\n", mdEscape(c))
		}
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("\n## Recommendations (ranked)\n\n")
		rows := make([][]string, 0, len(a.Recommendations))
		for _, rec := range a.Recommendations {
			rows = append(rows, []string{
				fmt.Sprintf("%d", rec.Index),
				string(rec.Priority),
				string(rec.Effort),
				string(rec.RegressionRisk),
				fmt.Sprintf("+%.2f%%", rec.EstimatedImprovement),
				mdEscape(rec.Description),
			})
		}
		mdTable(&b, []string{"Index", "Priority", "Effort", "Risk", "Improves", "Description"}, rows)
	}
	return b.String()
}
