package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dotcommander/gradegate/internal/config"
	"github.com/dotcommander/gradegate/internal/gate"
	"github.com/dotcommander/gradegate/internal/git"
	"github.com/dotcommander/gradegate/internal/output"
	"github.com/dotcommander/gradegate/internal/watch"
)

var (
	stagedOnly     bool
	diffOnly       bool
	watchMode      bool
	useBaseline    bool
	createBaseline bool
	baselinePath   string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Gate Go sources on cyclomatic complexity",
	Long: `The check command analyzes Go source files and fails when any function's
cyclomatic complexity exceeds the threshold.

With no arguments it scans the whole project root. Paths may name files or
directories. --staged and --diff restrict the run to files git reports as
changed, and --watch re-runs the gate whenever a Go file under the root is
saved.

A baseline accepts the current violations so the gate only fails on new or
worsened ones. --baseline-create writes the baseline; --baseline filters
against it.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&stagedOnly, "staged", false, "Check only files staged in git")
	checkCmd.Flags().BoolVar(&diffOnly, "diff", false, "Check only files changed since HEAD")
	checkCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-run the gate when Go files change")
	checkCmd.Flags().BoolVar(&useBaseline, "baseline", false, "Ignore violations recorded in the baseline")
	checkCmd.Flags().BoolVar(&createBaseline, "baseline-create", false, "Accept current violations into the baseline")
	checkCmd.Flags().StringVar(&baselinePath, "baseline-file", "", "Baseline file path (default .gradegatebaseline.json)")

	checkCmd.MarkFlagsMutuallyExclusive("watch", "staged")
	checkCmd.MarkFlagsMutuallyExclusive("watch", "diff")
	checkCmd.MarkFlagsMutuallyExclusive("baseline", "baseline-create")
}

func runCheck(paths []string) error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if baselinePath != "" {
		cfg.Baseline.Path = baselinePath
	}

	if watchMode {
		return watchLoop(cfg, paths)
	}

	selected, err := selectFiles(cfg, paths)
	if err != nil {
		return err
	}
	if (stagedOnly || diffOnly) && len(selected) == 0 {
		if !cfg.Quiet {
			fmt.Println("No changed Go files to check.")
		}
		return nil
	}

	result, err := runGate(cfg, selected)
	if err != nil {
		return err
	}
	if result.Failed() {
		exitFunc(1)
	}
	return nil
}

// selectFiles resolves which files the gate runs over: the git selection
// when --staged or --diff is set, otherwise the paths given on the command
// line (empty means the whole root).
func selectFiles(cfg *config.Config, args []string) ([]string, error) {
	switch {
	case stagedOnly:
		return git.StagedGoFiles(cfg.Root)
	case diffOnly:
		return git.ChangedGoFiles(cfg.Root)
	default:
		return args, nil
	}
}

// runGate runs one gate pass and formats the result.
func runGate(cfg *config.Config, paths []string) (*gate.Result, error) {
	g := gate.New(cfg, gate.Options{
		Paths:          paths,
		UseBaseline:    useBaseline,
		CreateBaseline: createBaseline,
	})
	result, err := g.Run()
	if err != nil {
		return nil, err
	}

	formatter, err := output.New(cfg.Format, cfg)
	if err != nil {
		return nil, err
	}
	if err := formatter.Format(result); err != nil {
		return nil, fmt.Errorf("error formatting output: %w", err)
	}
	return result, nil
}

// watchLoop runs the gate once, then again on every settled change under
// the root. Failures keep the loop alive; only Ctrl-C ends it.
func watchLoop(cfg *config.Config, paths []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if _, err := runGate(cfg, paths); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if !cfg.Quiet {
		fmt.Printf("\nWatching %s for changes (Ctrl-C to stop)...\n", cfg.Root)
	}

	return watch.Watch(ctx, cfg.Root, func(changed []string) {
		if !cfg.Quiet {
			if len(changed) == 1 {
				fmt.Printf("\nChange detected: %s\n", changed[0])
			} else {
				fmt.Printf("\nChange detected: %d files\n", len(changed))
			}
		}
		if _, err := runGate(cfg, paths); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
}
