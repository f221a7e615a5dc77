package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dotcommander/gradegate/internal/gate"
)

// MarkdownFormatter formats a gate result as Markdown, suitable for CI job
// summaries and pull request comments.
type MarkdownFormatter struct {
	quiet      bool
	verbose    bool
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(quiet, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		quiet:      quiet,
		verbose:    verbose,
		outputFile: outputFile,
	}
}

// Format formats the gate result as Markdown
func (f *MarkdownFormatter) Format(result *gate.Result) error {
	var builder strings.Builder

	// Header
	builder.WriteString("# Gradegate Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	if result.Root != "" {
		builder.WriteString(fmt.Sprintf("**Root:** %s\n\n", result.Root))
	}
	builder.WriteString(fmt.Sprintf("**Duration:** %v\n\n", result.Duration.Round(time.Millisecond)))
	builder.WriteString(strings.Repeat("-", 50) + "\n\n")

	// Summary Table
	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Count |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Files Analyzed | %d |\n", result.TotalFiles))
	builder.WriteString(fmt.Sprintf("| Functions | %d |\n", len(result.Report.Functions)))
	builder.WriteString(fmt.Sprintf("| Threshold | %d |\n", result.Threshold))
	builder.WriteString(fmt.Sprintf("| Violations | %d |\n", len(result.Report.Violations)))
	if result.IgnoredKnown > 0 {
		builder.WriteString(fmt.Sprintf("| Baselined | %d |\n", result.IgnoredKnown))
	}
	if len(result.ParseFailures) > 0 {
		builder.WriteString(fmt.Sprintf("| Parse Failures | %d |\n", len(result.ParseFailures)))
	}
	builder.WriteString("\n")

	// Violations
	if len(result.Report.Violations) > 0 {
		builder.WriteString("## Violations\n\n")
		builder.WriteString("| Function | Location | Score | Threshold | Over |\n")
		builder.WriteString("|----------|----------|-------|-----------|------|\n")
		for _, v := range result.Report.Violations {
			builder.WriteString(fmt.Sprintf("| `%s` | %s:%d | %d | %d | +%d |\n",
				v.Function, v.File, v.Line, v.Score, v.Threshold, v.Over))
		}
		builder.WriteString("\n")
	}

	// Parse failures
	if len(result.ParseFailures) > 0 {
		builder.WriteString("## Parse Failures\n\n")
		for _, pf := range result.ParseFailures {
			builder.WriteString(fmt.Sprintf("- **%s** - %s\n", pf.File, pf.Message))
		}
		builder.WriteString("\n")
	}

	// Per-file function scores (verbose only)
	if f.verbose && len(result.Files) > 0 {
		builder.WriteString("## Function Scores\n\n")
		for _, fr := range result.Files {
			builder.WriteString(fmt.Sprintf("### %s\n\n", fr.File))
			for _, fn := range fr.Functions {
				marker := ""
				if fn.Score > result.Threshold {
					marker = " ⚠️"
				}
				builder.WriteString(fmt.Sprintf("- `%s` (line %d): %d%s\n", fn.Function, fn.Line, fn.Score, marker))
			}
			builder.WriteString("\n")
		}
	}

	// Conclusion
	builder.WriteString("## Conclusion\n\n")
	switch {
	case result.Failed():
		builder.WriteString(fmt.Sprintf("✗ Gate failed at threshold %d\n", result.Threshold))
	case result.BaselineCreated != "":
		n := result.IgnoredKnown
		builder.WriteString(fmt.Sprintf("Baseline written to `%s`: %d %s recorded\n",
			result.BaselineCreated, n, pluralizeCount("violation", n)))
	default:
		builder.WriteString(fmt.Sprintf("✓ Gate passed at threshold %d\n", result.Threshold))
	}

	// Write to file or stdout
	content := builder.String()
	if f.outputFile != "" {
		err := os.WriteFile(f.outputFile, []byte(content), 0644)
		if err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
	} else {
		fmt.Print(content)
	}

	return nil
}
