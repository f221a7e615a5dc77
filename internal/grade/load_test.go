package grade

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSchemeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scheme.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing scheme file: %v", err)
	}
	return path
}

func TestLoadScheme(t *testing.T) {
	path := writeSchemeFile(t, `
components:
  - name: theory
    weight: 0.6
    min: 0
    max: 100
  - name: practice
    weight: 0.4
    min: 0
    max: 100
bands:
  - letter: A
    lower: 85
  - letter: C
    lower: 50
  - letter: F
    lower: 0
`)

	s, err := LoadScheme(path)
	if err != nil {
		t.Fatalf("LoadScheme() error = %v", err)
	}
	if len(s.Components) != 2 || len(s.Bands) != 3 {
		t.Fatalf("LoadScheme() = %d components, %d bands, want 2 and 3", len(s.Components), len(s.Bands))
	}
	if s.Components[0].Name != "theory" || s.Components[0].Weight != 0.6 {
		t.Errorf("component[0] = %+v, want theory with weight 0.6", s.Components[0])
	}
	if s.Bands[0].Letter != LetterA || s.Bands[0].Lower != 85 {
		t.Errorf("band[0] = %+v, want A from 85", s.Bands[0])
	}
}

func TestLoadSchemeAppliesRangeDefaults(t *testing.T) {
	path := writeSchemeFile(t, `
components:
  - name: homework
    weight: 0.5
  - name: exams
    weight: 0.5
bands:
  - letter: A
    lower: 90
  - letter: F
    lower: 0
`)

	s, err := LoadScheme(path)
	if err != nil {
		t.Fatalf("LoadScheme() error = %v", err)
	}
	for _, c := range s.Components {
		if c.Min != 0 || c.Max != 100 {
			t.Errorf("component %q range = [%g, %g], want default [0, 100]", c.Name, c.Min, c.Max)
		}
	}
}

func TestLoadSchemeJSONDocument(t *testing.T) {
	path := writeSchemeFile(t, `{
  "components": [
    {"name": "homework", "weight": 0.5},
    {"name": "exams", "weight": 0.5}
  ],
  "bands": [
    {"letter": "A", "lower": 90},
    {"letter": "F", "lower": 0}
  ]
}`)

	s, err := LoadScheme(path)
	if err != nil {
		t.Fatalf("LoadScheme() error = %v", err)
	}
	if len(s.Components) != 2 {
		t.Errorf("LoadScheme() = %d components, want 2", len(s.Components))
	}
}

func TestLoadSchemeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "not yaml",
			content: "components: [\n  broken",
			wantErr: "parsing scheme file",
		},
		{
			name: "misspelled field",
			content: `
components:
  - name: homework
    wieght: 1.0
bands:
  - letter: A
    lower: 0
`,
			wantErr: "schema validation failed",
		},
		{
			name: "letter outside the grade alphabet",
			content: `
components:
  - name: homework
    weight: 1.0
bands:
  - letter: E
    lower: 0
`,
			wantErr: "schema validation failed",
		},
		{
			name: "weights not summing to one",
			content: `
components:
  - name: homework
    weight: 0.5
  - name: exams
    weight: 0.4
bands:
  - letter: A
    lower: 90
  - letter: F
    lower: 0
`,
			wantErr: "sum to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSchemeFile(t, tt.content)
			_, err := LoadScheme(path)
			if err == nil {
				t.Fatal("LoadScheme() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadScheme() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSchemeMissingFile(t *testing.T) {
	_, err := LoadScheme(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadScheme() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "reading scheme file") {
		t.Errorf("LoadScheme() error = %q, want read failure", err)
	}
}
