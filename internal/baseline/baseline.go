// Package baseline records accepted complexity violations so the gate can
// be adopted on an existing codebase without failing on day one.
package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/dotcommander/gradegate/internal/complexity"
)

// DefaultFile is where a baseline lives relative to the project root.
const DefaultFile = ".gradegatebaseline.json"

// Entry is one accepted violation. Function and File are kept alongside
// the fingerprint so the file stays reviewable in code review.
type Entry struct {
	Fingerprint string `json:"fingerprint"`
	Function    string `json:"function"`
	File        string `json:"file"`
	Score       int    `json:"score"`
}

// Baseline is a snapshot of violations accepted at some point in time.
type Baseline struct {
	Version   string  `json:"version"`
	CreatedAt string  `json:"created_at"`
	Entries   []Entry `json:"entries"`

	index map[string]int // fingerprint -> accepted score
}

// Create snapshots the given violations. Entries are sorted by file then
// function for stable diffs.
func Create(violations []complexity.Violation, createdAt string) *Baseline {
	b := &Baseline{
		Version:   "1.0",
		CreatedAt: createdAt,
		index:     make(map[string]int),
	}
	for _, v := range violations {
		fp := fingerprint(v.File, v.Function)
		if prev, ok := b.index[fp]; !ok || v.Score > prev {
			b.index[fp] = v.Score
		}
	}
	emitted := make(map[string]bool, len(b.index))
	for _, v := range violations {
		fp := fingerprint(v.File, v.Function)
		if emitted[fp] {
			continue
		}
		emitted[fp] = true
		b.Entries = append(b.Entries, Entry{
			Fingerprint: fp,
			Function:    v.Function,
			File:        v.File,
			Score:       b.index[fp],
		})
	}
	sort.Slice(b.Entries, func(i, j int) bool {
		if b.Entries[i].File != b.Entries[j].File {
			return b.Entries[i].File < b.Entries[j].File
		}
		return b.Entries[i].Function < b.Entries[j].Function
	})
	return b
}

// Load reads a baseline from a JSON file.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing baseline file %s: %w", path, err)
	}

	b.index = make(map[string]int, len(b.Entries))
	for _, e := range b.Entries {
		b.index[e.Fingerprint] = e.Score
	}
	return &b, nil
}

// Save writes the baseline as indented JSON.
func (b *Baseline) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling baseline: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing baseline file: %w", err)
	}
	return nil
}

// Allows reports whether a violation is covered by the baseline: the
// function is known and its score has not worsened past the accepted one.
// Line numbers never enter the fingerprint, so unrelated edits that shift
// a function do not resurface it.
func (b *Baseline) Allows(v complexity.Violation) bool {
	if b == nil || b.index == nil {
		return false
	}
	score, ok := b.index[fingerprint(v.File, v.Function)]
	return ok && v.Score <= score
}

// Filter drops covered violations, returning the survivors and how many
// were ignored.
func (b *Baseline) Filter(violations []complexity.Violation) ([]complexity.Violation, int) {
	var kept []complexity.Violation
	ignored := 0
	for _, v := range violations {
		if b.Allows(v) {
			ignored++
			continue
		}
		kept = append(kept, v)
	}
	return kept, ignored
}

func fingerprint(file, function string) string {
	hash := sha256.Sum256([]byte(file + "|" + function))
	return fmt.Sprintf("%x", hash)
}
