package output

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dotcommander/gradegate/internal/complexity"
	"github.com/dotcommander/gradegate/internal/gate"
)

// ConsoleFormatter formats a gate result for terminal display.
type ConsoleFormatter struct {
	quiet    bool
	verbose  bool
	colorize bool
}

// NewConsoleFormatter creates a new ConsoleFormatter.
func NewConsoleFormatter(quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:    quiet,
		verbose:  verbose,
		colorize: true,
	}
}

// Format prints per-file status lines, every violation, and a closing
// summary. In quiet mode nothing is printed; the exit code carries the
// outcome.
func (f *ConsoleFormatter) Format(result *gate.Result) error {
	if f.quiet {
		return nil
	}

	f.printFileResults(result)
	f.printParseFailures(result)
	f.printSummary(result)
	f.printConclusion(result)

	return nil
}

// printFileResults prints one line per file, expanding violations beneath
// it. Clean files show up only in verbose mode.
func (f *ConsoleFormatter) printFileResults(result *gate.Result) {
	for _, fr := range result.Files {
		hasViolations := len(fr.Violations) > 0
		if !hasViolations && !f.verbose {
			continue
		}

		status := "✓"
		fileStyle := f.style("10") // green
		if hasViolations {
			status = "✗"
			fileStyle = f.style("9") // red
		}
		fmt.Printf("%s %s\n", fileStyle.Render(status), fr.File)

		for _, v := range fr.Violations {
			f.printViolation(v)
		}
		if f.verbose {
			for _, fs := range fr.Functions {
				if fs.Score > result.Threshold {
					continue
				}
				fmt.Printf("      %s\n", f.style("8").Render(fmt.Sprintf("%s complexity %d", fs.Function, fs.Score)))
			}
		}
	}
}

// printViolation prints a single violation with file:line positioning.
func (f *ConsoleFormatter) printViolation(v complexity.Violation) {
	msg := fmt.Sprintf("%s:%d: %s has complexity %d, threshold %d (over by %d)",
		v.File, v.Line, v.Function, v.Score, v.Threshold, v.Over)
	fmt.Printf("    ✘ %s\n", f.style("9").Render(msg))
}

// printParseFailures prints files that could not be analyzed.
func (f *ConsoleFormatter) printParseFailures(result *gate.Result) {
	for _, pf := range result.ParseFailures {
		fmt.Printf("%s %s\n", f.style("9").Render("✗"), pf.File)
		fmt.Printf("    ✘ %s\n", f.style("9").Render(pf.Message))
	}
}

// printSummary prints the closing statistics line. A perfectly clean run
// skips it and goes straight to the conclusion.
func (f *ConsoleFormatter) printSummary(result *gate.Result) {
	report := result.Report
	if report.Pass && len(result.ParseFailures) == 0 && result.IgnoredKnown == 0 {
		return
	}

	clean := result.TotalFiles - result.FailedFiles
	fmt.Printf("\n%d/%d files clean, %d of %d functions over threshold %d (%s)\n",
		clean, result.TotalFiles,
		len(report.Violations), len(report.Functions),
		result.Threshold, formatDuration(result.Duration))

	if result.IgnoredKnown > 0 {
		fmt.Printf("%s\n", f.style("8").Render(fmt.Sprintf(
			"%d known %s covered by baseline", result.IgnoredKnown, pluralizeCount("violation", result.IgnoredKnown))))
	}
}

// printConclusion prints the final verdict.
func (f *ConsoleFormatter) printConclusion(result *gate.Result) {
	if result.BaselineCreated != "" {
		fmt.Printf("%s\n", f.style("3").Render("Baseline written to "+result.BaselineCreated))
	}
	if result.Failed() {
		return
	}

	if len(result.Files) > 0 {
		fmt.Println()
	}

	msg := fmt.Sprintf("✓ Gate passed at threshold %d", result.Threshold)
	switch {
	case f.colorize && isTTY():
		printCelebration(msg)
	case f.colorize:
		fmt.Printf("%s\n", lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render(msg))
	default:
		fmt.Println(msg)
	}
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// isTTY returns true if stdout is a terminal.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printCelebration shows a sparkle animation for a perfectly clean gate.
func printCelebration(msg string) {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	bold := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	frames := []struct {
		text  string
		delay time.Duration
	}{
		{green.Render(msg), 200 * time.Millisecond},
		{yellow.Render("✨ " + msg + " ✨"), 300 * time.Millisecond},
		{bold.Render("🎉 " + msg + " 🎉"), 400 * time.Millisecond},
		{yellow.Render("✨ " + msg + " ✨"), 300 * time.Millisecond},
		{green.Render(msg), 0},
	}

	for i, frame := range frames {
		if i > 0 {
			fmt.Print("\r\033[K")
		}
		fmt.Print(frame.text)
		if frame.delay > 0 {
			time.Sleep(frame.delay)
		}
	}
	fmt.Println()
}

// pluralizeCount returns singular or plural form based on count.
func pluralizeCount(s string, count int) string {
	if count == 1 {
		return s
	}
	return s + "s"
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
