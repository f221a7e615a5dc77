package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dotcommander/gradegate/internal/config"
	"github.com/dotcommander/gradegate/internal/grade"
)

var schemeCheckFile string

var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Show or validate the active grading scheme",
	Long: `The scheme command prints the grading scheme evaluate would use:
component weights, score ranges and grade bands.

With --file it loads and validates the given YAML scheme instead, making
it a quick check for a scheme under development.

Validates:
- Component weights sum to 1.0
- Component names are unique and non-empty
- Bands descend strictly and cover the scheme's full point range`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScheme()
	},
}

func init() {
	rootCmd.AddCommand(schemeCmd)

	schemeCmd.Flags().StringVar(&schemeCheckFile, "file", "", "Validate this scheme file instead of showing the active one")
}

func runScheme() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	path := schemeCheckFile
	if path == "" {
		path = cfg.Scheme
	}

	scheme := grade.DefaultScheme()
	source := "built-in"
	if path != "" {
		scheme, err = grade.LoadScheme(path)
		if err != nil {
			return err
		}
		source = path
	}

	if cfg.Quiet {
		return nil
	}
	printScheme(scheme, source)
	return nil
}

func printScheme(scheme *grade.Scheme, source string) {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	fmt.Printf("%s Scheme valid: %s\n\n", green.Render("✓"), source)

	fmt.Println("Components:")
	for _, c := range scheme.Components {
		fmt.Printf("  %-14s weight %.2f  %s\n",
			c.Name, c.Weight, dim.Render(fmt.Sprintf("range [%g, %g]", c.Min, c.Max)))
	}

	fmt.Println("\nBands:")
	for _, b := range scheme.Bands {
		fmt.Printf("  %s  %s\n",
			letterStyle(b.Letter).Render(string(b.Letter)),
			dim.Render(fmt.Sprintf("from %g points", b.Lower)))
	}
}
