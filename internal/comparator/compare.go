// Package comparator detects behavioral divergence between two transcripts of
// the same command sequence. It normalizes away presentation noise (headers,
// status bars, wrap points, flavor messages), scores the remainder with a
// normalized edit-distance similarity, and classifies every divergence by
// severity and command category.
package comparator

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jsredmond/zorkparity/internal/models"
)

// Comparator compares transcript pairs under a fixed set of options. It is a
// pure computation over immutable inputs and is safe for concurrent use.
type Comparator struct {
	opts Options
	norm *Normalizer
}

// New builds a comparator. Zero-valued threshold fields fall back to the
// defaults so that Options{} literals behave sensibly.
func New(opts Options) *Comparator {
	if opts.ToleranceThreshold == 0 {
		opts.ToleranceThreshold = DefaultToleranceThreshold
	}
	if opts.MinorThreshold == 0 {
		opts.MinorThreshold = DefaultMinorThreshold
	}
	if opts.MajorThreshold == 0 {
		opts.MajorThreshold = DefaultMajorThreshold
	}
	return &Comparator{opts: opts, norm: NewNormalizer(opts)}
}

// Options returns the comparator's effective options.
func (c *Comparator) Options() Options {
	return c.opts
}

// Normalize exposes the comparator's normalizer, mainly for the analyzer and
// for report rendering.
func (c *Comparator) Normalize(s string) string {
	return c.norm.Normalize(s)
}

// Compare walks every index present in either transcript and produces the
// diff report. An index missing on either side is always a critical
// divergence: asymmetric transcript length means one engine stopped early.
func (c *Comparator) Compare(reference, candidate *models.Transcript) *models.DiffReport {
	total := len(reference.Entries)
	if len(candidate.Entries) > total {
		total = len(candidate.Entries)
	}

	report := &models.DiffReport{
		ReferenceID:   reference.ID,
		CandidateID:   candidate.ID,
		TotalCommands: total,
	}

	for i := 0; i < total; i++ {
		refEntry := reference.Entry(i)
		candEntry := candidate.Entry(i)

		if refEntry == nil || candEntry == nil {
			entry := c.missingEntryDiff(i, refEntry, candEntry)
			report.Differences = append(report.Differences, entry)
			report.Summary.Add(entry.Severity)
			continue
		}

		normRef := c.norm.Normalize(refEntry.Output)
		normCand := c.norm.Normalize(candEntry.Output)
		similarity := Similarity(normRef, normCand)

		slog.Debug("compared entry",
			"index", i, "command", refEntry.Command, "similarity", similarity)

		if similarity >= 1.0 {
			report.ExactMatches++
			continue
		}
		if similarity >= c.opts.ToleranceThreshold {
			report.CloseMatches++
			continue
		}

		category := CategorizeCommand(refEntry.Command)
		entry := models.DiffEntry{
			Index:      i,
			Command:    refEntry.Command,
			Expected:   refEntry.Output,
			Actual:     candEntry.Output,
			Similarity: similarity,
			Severity:   c.classifySeverity(similarity, normRef, normCand, category),
			Category:   category,
		}
		report.Differences = append(report.Differences, entry)
		report.Summary.Add(entry.Severity)
	}

	report.ParityScore = models.ComputeParityScore(report.ExactMatches, report.CloseMatches, total)
	return report
}

func (c *Comparator) missingEntryDiff(index int, refEntry, candEntry *models.TranscriptEntry) models.DiffEntry {
	entry := models.DiffEntry{
		Index:    index,
		Severity: models.SeverityCritical,
	}
	switch {
	case refEntry != nil:
		entry.Command = refEntry.Command
		entry.Expected = refEntry.Output
	case candEntry != nil:
		entry.Command = candEntry.Command
		entry.Actual = candEntry.Output
	}
	entry.Category = CategorizeCommand(entry.Command)
	return entry
}

// classifySeverity maps a below-tolerance divergence into the severity bands.
// Whitespace-only differences are pure formatting; known-variation markers and
// tolerated combat variance cap the result at minor.
func (c *Comparator) classifySeverity(similarity float64, normRef, normCand string, category models.Category) models.Severity {
	if stripAllWhitespace(normRef) == stripAllWhitespace(normCand) {
		return models.SeverityFormatting
	}
	if c.matchesKnownVariation(normRef, normCand) {
		return models.SeverityMinor
	}
	if c.opts.TolerateCombatVariance && category == models.CategoryCombat {
		return models.SeverityMinor
	}

	switch {
	case similarity >= c.opts.MinorThreshold:
		return models.SeverityMinor
	case similarity >= c.opts.MajorThreshold:
		return models.SeverityMajor
	default:
		return models.SeverityCritical
	}
}

func (c *Comparator) matchesKnownVariation(normRef, normCand string) bool {
	for _, marker := range c.opts.KnownVariations {
		if marker == "" {
			continue
		}
		if strings.Contains(normRef, marker) || strings.Contains(normCand, marker) {
			return true
		}
	}
	return false
}

var allWhitespace = regexp.MustCompile(`\s+`)

func stripAllWhitespace(s string) string {
	return allWhitespace.ReplaceAllString(s, "")
}
