// Package reporting renders comparison, batch, and certification artifacts
// into the recognized output formats. Every renderer is a pure function of an
// already-computed result.
package reporting

import (
	"encoding/json"
	"fmt"

	"github.com/jsredmond/zorkparity/internal/models"
)

// Format is a recognized output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatMarkdown, FormatHTML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, markdown, or html)", s)
	}
}

// RenderDiffReport renders one comparison result.
func RenderDiffReport(f Format, r *models.DiffReport) (string, error) {
	switch f {
	case FormatText:
		return diffReportText(r), nil
	case FormatJSON:
		return toJSON(r)
	case FormatMarkdown:
		return diffReportMarkdown(r), nil
	case FormatHTML:
		return renderHTML(diffReportMarkdown(r))
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

// RenderBatchResult renders one batch run.
func RenderBatchResult(f Format, b *models.BatchResult) (string, error) {
	switch f {
	case FormatText:
		return batchText(b), nil
	case FormatJSON:
		return toJSON(b)
	case FormatMarkdown:
		return batchMarkdown(b), nil
	case FormatHTML:
		return renderHTML(batchMarkdown(b))
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

// RenderValidation renders one certification run.
func RenderValidation(f Format, v *models.PerfectParityValidation) (string, error) {
	switch f {
	case FormatText:
		return validationText(v), nil
	case FormatJSON:
		return toJSON(v)
	case FormatMarkdown:
		return validationMarkdown(v), nil
	case FormatHTML:
		return renderHTML(validationMarkdown(v))
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

// RenderAnalysis renders a deep-analysis result.
func RenderAnalysis(f Format, a *models.DeepAnalysisResult) (string, error) {
	switch f {
	case FormatText:
		return analysisText(a), nil
	case FormatJSON:
		return toJSON(a)
	case FormatMarkdown:
		return analysisMarkdown(a), nil
	case FormatHTML:
		return renderHTML(analysisMarkdown(a))
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

// toJSON is the faithful serialization path: every field of the report, no
// presentation filtering.
func toJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	return string(data) + "\n", nil
}
