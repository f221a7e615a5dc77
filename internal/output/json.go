package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dotcommander/gradegate/internal/complexity"
	"github.com/dotcommander/gradegate/internal/gate"
)

const toolVersion = "1.0.0"

// JSONFormatter formats a gate result as a machine-readable report.
type JSONFormatter struct {
	quiet      bool
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter. With an empty outputFile
// the report goes to stdout.
func NewJSONFormatter(quiet bool, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		quiet:      quiet,
		indent:     indent,
		outputFile: outputFile,
	}
}

// Format writes the full report. quiet drops the per-function listing and
// keeps the summary and violations.
func (f *JSONFormatter) Format(result *gate.Result) error {
	report := JSONReport{
		Header: JSONHeader{
			Tool:      "gradegate",
			Version:   toolVersion,
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Summary: JSONSummary{
			Pass:           result.Report.Pass && len(result.ParseFailures) == 0,
			Threshold:      result.Threshold,
			TotalFiles:     result.TotalFiles,
			FailedFiles:    result.FailedFiles,
			TotalFunctions: len(result.Report.Functions),
			Violations:     len(result.Report.Violations),
			IgnoredKnown:   result.IgnoredKnown,
			Duration:       result.Duration.Round(time.Millisecond).String(),
		},
		Violations:    result.Report.Violations,
		ParseFailures: result.ParseFailures,
	}
	if !f.quiet {
		report.Functions = result.Report.Functions
	}

	var jsonBytes []byte
	var err error
	if f.indent {
		jsonBytes, err = json.MarshalIndent(report, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// JSONReport represents the complete JSON report structure.
type JSONReport struct {
	Header        JSONHeader             `json:"header"`
	Summary       JSONSummary            `json:"summary"`
	Violations    []complexity.Violation `json:"violations"`
	Functions     []complexity.FuncScore `json:"functions,omitempty"`
	ParseFailures []gate.ParseFailure    `json:"parse_failures,omitempty"`
}

// JSONHeader contains report metadata.
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONSummary contains summary statistics.
type JSONSummary struct {
	Pass           bool   `json:"pass"`
	Threshold      int    `json:"threshold"`
	TotalFiles     int    `json:"total_files"`
	FailedFiles    int    `json:"failed_files"`
	TotalFunctions int    `json:"total_functions"`
	Violations     int    `json:"violations"`
	IgnoredKnown   int    `json:"ignored_known,omitempty"`
	Duration       string `json:"duration"`
}
