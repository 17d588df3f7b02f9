package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/jsredmond/zorkparity/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one batch run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one command sequence.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure represents a sequence that diverged from the reference.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents a sequence that could not be recorded at all.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a batch result to JUnit XML so CI systems can track
// per-sequence parity like a test suite.
func ConvertToJUnit(b *models.BatchResult, suiteName string, timestamp time.Time) *JUnitTestSuites {
	durationSec := float64(b.DurationMs) / 1000.0

	divergent := 0
	for _, res := range b.Results {
		if !res.Failed && res.DifferenceCount > 0 {
			divergent++
		}
	}

	suite := JUnitTestSuite{
		Name:      suiteName,
		Tests:     b.TotalSequences,
		Failures:  divergent,
		Errors:    b.Failed,
		Time:      durationSec,
		Timestamp: timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "aggregate_parity", Value: fmt.Sprintf("%.4f", b.AggregateParity)},
			{Name: "total_differences", Value: fmt.Sprintf("%d", b.TotalDifferences)},
		},
	}

	for _, res := range b.Results {
		suite.TestCases = append(suite.TestCases, convertSequenceResult(suiteName, res))
	}

	return &JUnitTestSuites{
		Tests:      b.TotalSequences,
		Failures:   divergent,
		Errors:     b.Failed,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertSequenceResult(suiteName string, res models.SequenceResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      res.SequenceID,
		Classname: suiteName,
		Time:      float64(res.DurationMs) / 1000.0,
	}

	switch {
	case res.Failed:
		msg := res.ErrorMsg
		if msg == "" {
			msg = "recording failed"
		}
		tc.Error = &JUnitError{Message: msg, Type: "RecordingError"}
	case res.DifferenceCount > 0:
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s: parity=%.2f%%", res.SequenceID, res.ParityScore),
			Type:    "ParityFailure",
			Body:    formatDivergences(res.Report),
		}
	}
	return tc
}

func formatDivergences(r *models.DiffReport) string {
	if r == nil {
		return ""
	}
	var body string
	for _, d := range r.Differences {
		body += fmt.Sprintf("[%s] index %d (%s): similarity %.2f\n", d.Severity, d.Index, d.Command, d.Similarity)
	}
	return body
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(b *models.BatchResult, suiteName string, path string) error {
	suites := ConvertToJUnit(b, suiteName, time.Now())

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0o644)
}
