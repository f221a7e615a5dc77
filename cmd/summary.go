package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dotcommander/gradegate/internal/complexity"
	"github.com/dotcommander/gradegate/internal/config"
	"github.com/dotcommander/gradegate/internal/gate"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show complexity summary across the project",
	Long: `Aggregates per-function cyclomatic complexity across every Go file under
the project root and displays a summary report with score distribution,
averages, and the worst-scoring functions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSummary(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	result, err := gate.New(cfg, gate.Options{}).Run()
	if err != nil {
		return err
	}

	summary := complexity.Summarize(result.Report.Functions, result.Threshold, 5)
	printSummaryReport(result, summary)
	return nil
}

// summaryStyles holds all the styles used in the summary report.
type summaryStyles struct {
	header lipgloss.Style
	low    lipgloss.Style
	mid    lipgloss.Style
	high   lipgloss.Style
	severe lipgloss.Style
	dim    lipgloss.Style
}

func newSummaryStyles() summaryStyles {
	return summaryStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		mid:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		high:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		severe: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func printSummaryReport(result *gate.Result, summary complexity.Summary) {
	styles := newSummaryStyles()

	printReportHeader(styles)
	printCounts(result, summary)
	printDistribution(summary, styles)
	printWorstFunctions(summary, styles)
	printReportFooter(styles)
}

func printReportHeader(styles summaryStyles) {
	fmt.Println()
	fmt.Println(styles.header.Render("╔═══════════════════════════════════════════════════════════╗"))
	fmt.Println(styles.header.Render("║              COMPLEXITY SUMMARY                            ║"))
	fmt.Println(styles.header.Render("╠═══════════════════════════════════════════════════════════╣"))
}

func printCounts(result *gate.Result, summary complexity.Summary) {
	fmt.Printf("║ Files Analyzed: %-42d ║\n", result.TotalFiles)
	fmt.Printf("║ Functions: %-7d │ Avg: %-6.1f │ Max: %-17d ║\n",
		summary.TotalFunctions, summary.AvgScore, summary.MaxScore)
	fmt.Printf("║ Over Threshold (%d): %-38d ║\n", summary.Threshold, summary.OverThreshold)
}

func printDistribution(summary complexity.Summary, styles summaryStyles) {
	fmt.Println(styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Println("║ SCORE DISTRIBUTION                                        ║")

	total := summary.TotalFunctions
	if total == 0 {
		total = 1
	}

	rows := []struct {
		label string
		style lipgloss.Style
		color string
	}{
		{"1-5  ", styles.low, "10"},
		{"6-10 ", styles.mid, "12"},
		{"11-20", styles.high, "3"},
		{"21+  ", styles.severe, "9"},
	}
	for i, row := range rows {
		count := summary.Distribution[complexity.Buckets[i]]
		fmt.Printf("║   %s: %-4d (%5.1f%%)  %s                              ║\n",
			row.style.Render(row.label), count, float64(count)/float64(total)*100,
			renderBar(count, summary.TotalFunctions, row.color))
	}
}

func printWorstFunctions(summary complexity.Summary, styles summaryStyles) {
	fmt.Println(styles.header.Render("╠───────────────────────────────────────────────────────────╣"))
	fmt.Println("║ WORST FUNCTIONS                                           ║")

	for i, fs := range summary.Worst {
		scoreStyle := styles.low
		if fs.Score > summary.Threshold {
			scoreStyle = styles.severe
		}
		name := fs.Function
		if len(name) > 35 {
			name = name[:32] + "..."
		}
		fmt.Printf("║   %s %-35s %s ║\n",
			styles.dim.Render(fmt.Sprintf("%d.", i+1)),
			name,
			scoreStyle.Render(fmt.Sprintf("%17d", fs.Score)))
	}
}

func printReportFooter(styles summaryStyles) {
	fmt.Println(styles.header.Render("╚═══════════════════════════════════════════════════════════╝"))
	fmt.Println()
}

func renderBar(count, total int, color string) string {
	if total == 0 {
		return ""
	}
	barWidth := 10
	filled := (count * barWidth) / total
	if count > 0 && filled == 0 {
		filled = 1
	}
	bar := ""
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	for i := 0; i < filled; i++ {
		bar += style.Render("█")
	}
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	for i := filled; i < barWidth; i++ {
		bar += dimStyle.Render("░")
	}
	return bar
}
