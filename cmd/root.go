package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the tool version reported by --version.
const Version = "1.0.0"

// exitFunc is swapped out by tests that need to observe exit codes.
var exitFunc = os.Exit

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	threshold    int
)

var rootCmd = &cobra.Command{
	Use:   "gradegate",
	Short: "Gradegate - grade evaluation with a cyclomatic complexity gate",
	Long: `Gradegate evaluates weighted component scores into letter grades and
gates Go source trees on per-function cyclomatic complexity.

By default, gradegate analyzes every Go file under the project root and
reports functions whose complexity exceeds the threshold. Use the check
command for scoped runs (explicit paths, staged files, watch mode) and the
evaluate command to compute a grade from component scores.`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Project root directory (auto-detected if not specified)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (requires --format)")
	rootCmd.PersistentFlags().IntVarP(&threshold, "threshold", "t", 0, "Complexity threshold (defaults to config, then 5)")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("threshold", rootCmd.PersistentFlags().Lookup("threshold"))
}

func initConfig() {
	configPaths := []string{".gradegaterc.json", ".gradegaterc.yaml", ".gradegaterc.yml"}
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				os.Exit(1)
			}
			break
		}
	}
}
