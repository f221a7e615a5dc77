package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dotcommander/gradegate/internal/config"
	"github.com/dotcommander/gradegate/internal/grade"
)

var (
	scoreFlags   []string
	strategyFlag string
	schemeFile   string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate weighted component scores into a letter grade",
	Long: `The evaluate command computes a letter grade from component scores.

Each --score takes a name=value pair, where value is a 0-100 score for one
component of the grading scheme. Every component must be given exactly
once. The weighted total is mapped onto the scheme's grade bands.

Example:
  gradegate evaluate --score homework=90 --score exams=80 --score participation=100

Two strategies produce identical grades: "decomposed" (the default) and
"monolithic", a deliberately tangled rendition kept as the counterexample
the complexity gate is pointed at.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEvaluate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringArrayVarP(&scoreFlags, "score", "s", nil, "Component score as name=value (repeatable)")
	evaluateCmd.Flags().StringVar(&strategyFlag, "strategy", "", "Evaluation strategy (decomposed|monolithic)")
	evaluateCmd.Flags().StringVar(&schemeFile, "scheme", "", "Grading scheme YAML file (default: built-in scheme)")
}

func runEvaluate() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	strategy, err := resolveStrategy(cfg)
	if err != nil {
		return err
	}
	scheme, err := resolveScheme(cfg)
	if err != nil {
		return err
	}
	scores, err := parseScores(scoreFlags)
	if err != nil {
		return err
	}

	evaluator, err := grade.NewEvaluator(strategy, scheme)
	if err != nil {
		return err
	}

	letter, err := evaluator.Evaluate(scores)
	if err != nil {
		var invalid *grade.InvalidInputError
		if errors.As(err, &invalid) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", invalid)
			exitFunc(1)
			return nil
		}
		return err
	}

	printGrade(cfg, scheme, scores, letter)
	return nil
}

func resolveStrategy(cfg *config.Config) (grade.Strategy, error) {
	name := cfg.Strategy
	if strategyFlag != "" {
		name = strategyFlag
	}
	return grade.ParseStrategy(name)
}

func resolveScheme(cfg *config.Config) (*grade.Scheme, error) {
	path := cfg.Scheme
	if schemeFile != "" {
		path = schemeFile
	}
	if path == "" {
		return grade.DefaultScheme(), nil
	}
	scheme, err := grade.LoadScheme(path)
	if err != nil {
		return nil, fmt.Errorf("error loading scheme: %w", err)
	}
	return scheme, nil
}

// parseScores turns repeated name=value flags into a score map.
func parseScores(pairs []string) (map[string]float64, error) {
	scores := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --score %q: want name=value", pair)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --score %q: not a number", pair)
		}
		scores[name] = value
	}
	return scores, nil
}

func printGrade(cfg *config.Config, scheme *grade.Scheme, scores map[string]float64, letter grade.Letter) {
	if cfg.Quiet {
		fmt.Println(letter)
		return
	}
	if cfg.Verbose {
		printBreakdown(scheme, scores)
	}
	fmt.Printf("Grade: %s\n", letterStyle(letter).Render(string(letter)))
}

func printBreakdown(scheme *grade.Scheme, scores map[string]float64) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	total := 0.0
	for _, c := range scheme.Components {
		points := scores[c.Name] * c.Weight
		total += points
		fmt.Printf("  %s\n", dim.Render(fmt.Sprintf("%-14s %6.1f × %.2f = %6.2f", c.Name, scores[c.Name], c.Weight, points)))
	}
	fmt.Printf("  %-14s %16s %6.2f\n", "total", "", total)
}

// letterStyle colors letters the way the summary report colors its tiers.
func letterStyle(letter grade.Letter) lipgloss.Style {
	switch letter {
	case grade.LetterA:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	case grade.LetterB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	case grade.LetterC:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}
}
