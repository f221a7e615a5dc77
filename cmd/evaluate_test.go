package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/gradegate/internal/config"
	"github.com/dotcommander/gradegate/internal/grade"
)

const customSchemeYAML = `components:
  - name: homework
    weight: 0.4
  - name: exams
    weight: 0.6
bands:
  - letter: A
    lower: 90
  - letter: B
    lower: 80
  - letter: C
    lower: 70
  - letter: D
    lower: 60
  - letter: F
    lower: 0
`

func TestParseScores(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]float64
		wantErr string
	}{
		{
			name:  "valid pairs",
			pairs: []string{"homework=90", "exams=80.5", "participation=100"},
			want:  map[string]float64{"homework": 90, "exams": 80.5, "participation": 100},
		},
		{
			name:  "no pairs",
			pairs: nil,
			want:  map[string]float64{},
		},
		{
			name:  "negative value parses",
			pairs: []string{"homework=-5"},
			want:  map[string]float64{"homework": -5},
		},
		{
			name:  "repeated name keeps the last value",
			pairs: []string{"homework=90", "homework=95"},
			want:  map[string]float64{"homework": 95},
		},
		{
			name:    "missing equals sign",
			pairs:   []string{"homework"},
			wantErr: `invalid --score "homework": want name=value`,
		},
		{
			name:    "empty name",
			pairs:   []string{"=90"},
			wantErr: `invalid --score "=90": want name=value`,
		},
		{
			name:    "value not a number",
			pairs:   []string{"homework=ninety"},
			wantErr: `invalid --score "homework=ninety": not a number`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScores(tt.pairs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStrategy(t *testing.T) {
	origFlag := strategyFlag
	defer func() { strategyFlag = origFlag }()

	cfg := &config.Config{Strategy: "decomposed"}

	strategyFlag = ""
	got, err := resolveStrategy(cfg)
	require.NoError(t, err)
	assert.Equal(t, grade.StrategyDecomposed, got)

	strategyFlag = "monolithic"
	got, err = resolveStrategy(cfg)
	require.NoError(t, err)
	assert.Equal(t, grade.StrategyMonolithic, got, "flag should override config")

	strategyFlag = "zigzag"
	_, err = resolveStrategy(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestResolveScheme(t *testing.T) {
	origFile := schemeFile
	defer func() { schemeFile = origFile }()

	t.Run("default scheme", func(t *testing.T) {
		schemeFile = ""
		scheme, err := resolveScheme(&config.Config{})
		require.NoError(t, err)
		require.Len(t, scheme.Components, 3)
		assert.Equal(t, "homework", scheme.Components[0].Name)
	})

	t.Run("file from flag", func(t *testing.T) {
		schemeFile = writeScheme(t, customSchemeYAML)
		scheme, err := resolveScheme(&config.Config{})
		require.NoError(t, err)
		require.Len(t, scheme.Components, 2)
		assert.Equal(t, 0.4, scheme.Components[0].Weight)
	})

	t.Run("file from config", func(t *testing.T) {
		schemeFile = ""
		path := writeScheme(t, customSchemeYAML)
		scheme, err := resolveScheme(&config.Config{Scheme: path})
		require.NoError(t, err)
		assert.Len(t, scheme.Components, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		schemeFile = filepath.Join(t.TempDir(), "nope.yaml")
		_, err := resolveScheme(&config.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error loading scheme")
	})
}

func TestRunEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		scores []string
		want   string
	}{
		{"weighted mix lands a B", []string{"homework=90", "exams=80", "participation=100"}, "Grade: B"},
		{"perfect scores land an A", []string{"homework=100", "exams=100", "participation=100"}, "Grade: A"},
		{"zero scores land an F", []string{"homework=0", "exams=0", "participation=0"}, "Grade: F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreEvaluateFlags(t)
			scoreFlags = tt.scores
			exitCode := mockExit(t)

			var runErr error
			output := captureStdout(t, func() { runErr = runEvaluate() })

			require.NoError(t, runErr)
			assert.Equal(t, -1, *exitCode)
			assert.Contains(t, output, tt.want)
		})
	}
}

func TestRunEvaluateMonolithic(t *testing.T) {
	restoreEvaluateFlags(t)
	scoreFlags = []string{"homework=90", "exams=80", "participation=100"}
	strategyFlag = "monolithic"
	exitCode := mockExit(t)

	var runErr error
	output := captureStdout(t, func() { runErr = runEvaluate() })

	require.NoError(t, runErr)
	assert.Equal(t, -1, *exitCode)
	assert.Contains(t, output, "Grade: B")
}

func TestRunEvaluateCustomScheme(t *testing.T) {
	restoreEvaluateFlags(t)
	scoreFlags = []string{"homework=100", "exams=80"}
	schemeFile = writeScheme(t, customSchemeYAML)
	exitCode := mockExit(t)

	var runErr error
	output := captureStdout(t, func() { runErr = runEvaluate() })

	require.NoError(t, runErr)
	assert.Equal(t, -1, *exitCode)
	assert.Contains(t, output, "Grade: B") // 100*0.4 + 80*0.6 = 88
}

func TestRunEvaluateOutOfRangeScore(t *testing.T) {
	restoreEvaluateFlags(t)
	scoreFlags = []string{"homework=-5", "exams=80", "participation=100"}
	exitCode := mockExit(t)

	var runErr error
	captureStdout(t, func() { runErr = runEvaluate() })

	require.NoError(t, runErr, "invalid input exits nonzero without an error return")
	assert.Equal(t, 1, *exitCode)
}

func TestRunEvaluateMissingComponent(t *testing.T) {
	restoreEvaluateFlags(t)
	scoreFlags = []string{"homework=90"}
	exitCode := mockExit(t)

	var runErr error
	captureStdout(t, func() { runErr = runEvaluate() })

	require.NoError(t, runErr)
	assert.Equal(t, 1, *exitCode)
}

func TestRunEvaluateUnknownStrategy(t *testing.T) {
	restoreEvaluateFlags(t)
	strategyFlag = "zigzag"
	mockExit(t)

	err := runEvaluate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestRunEvaluateBadScoreFlag(t *testing.T) {
	restoreEvaluateFlags(t)
	scoreFlags = []string{"homework=ninety"}
	mockExit(t)

	err := runEvaluate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --score")
}

func TestRunEvaluateMonolithicCustomScheme(t *testing.T) {
	restoreEvaluateFlags(t)
	scoreFlags = []string{"homework=100", "exams=80"}
	strategyFlag = "monolithic"
	schemeFile = writeScheme(t, customSchemeYAML)
	mockExit(t)

	err := runEvaluate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "supports only the default scheme")
}

func TestPrintGradeQuiet(t *testing.T) {
	cfg := &config.Config{Quiet: true}

	output := captureStdout(t, func() {
		printGrade(cfg, grade.DefaultScheme(), nil, grade.LetterA)
	})

	assert.Equal(t, "A\n", output)
}

func TestPrintGradeVerbose(t *testing.T) {
	cfg := &config.Config{Verbose: true}
	scores := map[string]float64{"homework": 90, "exams": 80, "participation": 100}

	output := captureStdout(t, func() {
		printGrade(cfg, grade.DefaultScheme(), scores, grade.LetterB)
	})

	assert.Contains(t, output, "homework")
	assert.Contains(t, output, "27.00") // 90 × 0.30
	assert.Contains(t, output, "87.00")
	assert.Contains(t, output, "Grade: B")
}

func TestEvaluateCmdFlags(t *testing.T) {
	score := evaluateCmd.Flags().Lookup("score")
	require.NotNil(t, score)
	assert.Equal(t, "s", score.Shorthand)
	assert.NotNil(t, evaluateCmd.Flags().Lookup("strategy"))
	assert.NotNil(t, evaluateCmd.Flags().Lookup("scheme"))
}

// restoreEvaluateFlags resets evaluate's flag globals when the test ends.
func restoreEvaluateFlags(t *testing.T) {
	t.Helper()
	origScores, origStrategy, origScheme := scoreFlags, strategyFlag, schemeFile
	t.Cleanup(func() { scoreFlags, strategyFlag, schemeFile = origScores, origStrategy, origScheme })
}

func writeScheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scheme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
