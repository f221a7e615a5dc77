// Package gate runs the complexity gate end to end: collect Go files,
// score every function, apply the baseline, build the report.
package gate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dotcommander/gradegate/internal/baseline"
	"github.com/dotcommander/gradegate/internal/complexity"
	"github.com/dotcommander/gradegate/internal/config"
	"github.com/dotcommander/gradegate/internal/discovery"
	"github.com/dotcommander/gradegate/internal/project"
)

// Options adjusts a single run beyond what config carries.
type Options struct {
	Paths          []string // explicit files or directories; empty means the whole root
	Threshold      int      // 0 means take the configured threshold
	UseBaseline    bool
	CreateBaseline bool
}

// ParseFailure is a file that could not be analyzed. Parse failures fail
// the run: source that does not parse will not build either.
type ParseFailure struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// FileResult groups one file's scores and surviving violations for display.
type FileResult struct {
	File       string
	Functions  []complexity.FuncScore
	Violations []complexity.Violation
}

// Result is everything a formatter needs to render a run.
type Result struct {
	Root            string
	Threshold       int
	Report          *complexity.Report
	Files           []FileResult
	ParseFailures   []ParseFailure
	TotalFiles      int
	FailedFiles     int
	SkippedBlank    int
	IgnoredKnown    int    // violations suppressed by the baseline
	BaselineCreated string // path written by a create run, empty otherwise
	StartTime       time.Time
	Duration        time.Duration
}

// Failed reports whether the run should exit nonzero.
func (r *Result) Failed() bool {
	return !r.Report.Pass || len(r.ParseFailures) > 0
}

// Gate orchestrates one run.
type Gate struct {
	cfg  *config.Config
	opts Options
}

// New creates a Gate with the given configuration and per-run options.
func New(cfg *config.Config, opts Options) *Gate {
	return &Gate{cfg: cfg, opts: opts}
}

// Run analyzes the selected files and returns the aggregated result. An
// error means the run itself could not proceed; a failing gate is reported
// through Result.Failed, not through the error.
func (g *Gate) Run() (*Result, error) {
	start := time.Now()

	if g.cfg.Root == "" {
		root, err := project.FindProjectRoot(".")
		if err != nil {
			return nil, fmt.Errorf("error finding project root: %w", err)
		}
		g.cfg.Root = root
	}

	files, err := g.collectFiles()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Root:       g.cfg.Root,
		Threshold:  g.threshold(),
		TotalFiles: len(files),
		StartTime:  start,
	}

	var all []complexity.FuncScore
	for _, f := range files {
		name := g.displayName(f)
		src, err := os.ReadFile(f.Path)
		if err != nil {
			res.ParseFailures = append(res.ParseFailures, ParseFailure{File: name, Message: err.Error()})
			continue
		}
		scores, err := complexity.AnalyzeSource(name, src)
		if err != nil {
			if complexity.IsBlank(src) {
				res.SkippedBlank++
				continue
			}
			res.ParseFailures = append(res.ParseFailures, ParseFailure{File: name, Message: err.Error()})
			continue
		}
		all = append(all, scores...)
	}

	report := complexity.BuildReport(all, res.Threshold)
	if err := g.applyBaseline(report, res); err != nil {
		return nil, err
	}

	res.Report = report
	res.Files = groupByFile(report)
	res.FailedFiles = len(res.ParseFailures)
	for _, fr := range res.Files {
		if len(fr.Violations) > 0 {
			res.FailedFiles++
		}
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (g *Gate) threshold() int {
	if g.opts.Threshold > 0 {
		return g.opts.Threshold
	}
	return g.cfg.Threshold
}

func (g *Gate) collectFiles() ([]discovery.File, error) {
	if len(g.opts.Paths) > 0 {
		return discovery.ExpandPaths(g.opts.Paths, g.cfg.Exclude)
	}
	return discovery.New(g.cfg.Root, g.cfg.Exclude).Discover()
}

// displayName prefers a root-relative path so reports and baseline
// fingerprints stay stable across machines and invocation directories.
func (g *Gate) displayName(f discovery.File) string {
	if g.cfg.Root == "" {
		return f.RelPath
	}
	rel, err := filepath.Rel(g.cfg.Root, f.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return f.RelPath
	}
	return filepath.ToSlash(rel)
}

// applyBaseline handles the two baseline modes: creating a snapshot that
// accepts the current state, or filtering known violations out of the
// report. A missing baseline file on a filter run is not an error; there
// is simply nothing to ignore.
func (g *Gate) applyBaseline(report *complexity.Report, res *Result) error {
	path := g.cfg.Baseline.Path
	if g.cfg.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(g.cfg.Root, path)
	}

	if g.opts.CreateBaseline {
		b := baseline.Create(report.Violations, time.Now().UTC().Format(time.RFC3339))
		if err := b.Save(path); err != nil {
			return fmt.Errorf("creating baseline: %w", err)
		}
		res.BaselineCreated = path
		res.IgnoredKnown = len(report.Violations)
		report.Violations = nil
		report.Pass = true
		return nil
	}

	if !g.opts.UseBaseline && !g.cfg.Baseline.Enabled {
		return nil
	}

	b, err := baseline.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("loading baseline: %w", err)
	}
	report.Violations, res.IgnoredKnown = b.Filter(report.Violations)
	report.Pass = len(report.Violations) == 0
	return nil
}

// groupByFile splits a report into per-file slices, preserving the order
// files were analyzed in.
func groupByFile(report *complexity.Report) []FileResult {
	index := make(map[string]int)
	var results []FileResult
	for _, fs := range report.Functions {
		i, ok := index[fs.File]
		if !ok {
			i = len(results)
			index[fs.File] = i
			results = append(results, FileResult{File: fs.File})
		}
		results[i].Functions = append(results[i].Functions, fs)
	}
	for _, v := range report.Violations {
		if i, ok := index[v.File]; ok {
			results[i].Violations = append(results[i].Violations, v)
		}
	}
	return results
}
