package grade

import (
	"fmt"
	"math"
	"sort"
)

// Letter is a final letter grade.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
	LetterF Letter = "F"
)

// WeightTolerance is how far component weights may drift from summing to 1.0
// before a scheme is rejected.
const WeightTolerance = 1e-6

// Component is one weighted part of a grading scheme.
type Component struct {
	Name   string  `yaml:"name" json:"name"`
	Weight float64 `yaml:"weight" json:"weight"`
	Min    float64 `yaml:"min" json:"min"`
	Max    float64 `yaml:"max" json:"max"`
}

// Band maps a range of total points onto a letter. Bands are kept sorted by
// descending Lower; a band's upper bound is the Lower of the band above it,
// and the top band includes the scheme maximum itself.
type Band struct {
	Letter Letter  `yaml:"letter" json:"letter"`
	Lower  float64 `yaml:"lower" json:"lower"`
}

// Scheme is a grading scheme: weighted components plus the band table that
// turns total points into a letter.
type Scheme struct {
	Components []Component `yaml:"components" json:"components"`
	Bands      []Band      `yaml:"bands" json:"bands"`
}

// DefaultScheme returns the scheme the tool ships with: homework 30%,
// exams 50%, participation 20%, with the conventional 90/80/70/60 cutoffs.
func DefaultScheme() *Scheme {
	return &Scheme{
		Components: []Component{
			{Name: "homework", Weight: 0.30, Min: 0, Max: 100},
			{Name: "exams", Weight: 0.50, Min: 0, Max: 100},
			{Name: "participation", Weight: 0.20, Min: 0, Max: 100},
		},
		Bands: []Band{
			{Letter: LetterA, Lower: 90},
			{Letter: LetterB, Lower: 80},
			{Letter: LetterC, Lower: 70},
			{Letter: LetterD, Lower: 60},
			{Letter: LetterF, Lower: 0},
		},
	}
}

// Validate checks that the scheme is usable: at least one component, weights
// summing to 1.0 within WeightTolerance, sane per-component ranges, and a
// strictly descending band table that reaches down to the lowest possible
// total.
func (s *Scheme) Validate() error {
	if err := s.validateComponents(); err != nil {
		return err
	}
	return s.validateBands()
}

func (s *Scheme) validateComponents() error {
	if len(s.Components) == 0 {
		return &InvalidInputError{Reason: "scheme has no components"}
	}
	sum := 0.0
	for _, c := range s.Components {
		if err := c.validate(); err != nil {
			return err
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return &InvalidInputError{Reason: fmt.Sprintf("component weights sum to %g, want 1.0", sum)}
	}
	return s.validateUniqueNames()
}

func (s *Scheme) validateUniqueNames() error {
	seen := make(map[string]bool, len(s.Components))
	for _, c := range s.Components {
		if seen[c.Name] {
			return &InvalidInputError{Component: c.Name, Reason: "declared more than once"}
		}
		seen[c.Name] = true
	}
	return nil
}

func (c Component) validate() error {
	if c.Name == "" {
		return &InvalidInputError{Reason: "component with empty name"}
	}
	if c.Weight < 0 || c.Weight > 1 {
		return &InvalidInputError{Component: c.Name, Value: c.Weight, Reason: fmt.Sprintf("weight %g outside [0, 1]", c.Weight)}
	}
	if c.Min >= c.Max {
		return &InvalidInputError{Component: c.Name, Reason: fmt.Sprintf("empty valid range [%g, %g]", c.Min, c.Max)}
	}
	return nil
}

func (s *Scheme) validateBands() error {
	if len(s.Bands) == 0 {
		return &InvalidInputError{Reason: "scheme has no grade bands"}
	}
	for i, b := range s.Bands {
		if i == 0 {
			continue
		}
		if b.Lower >= s.Bands[i-1].Lower {
			return &InvalidInputError{Reason: fmt.Sprintf("band %q does not descend below band %q", b.Letter, s.Bands[i-1].Letter)}
		}
	}
	return s.validateBandCoverage()
}

// validateBandCoverage pins the band table to the reachable totals: the
// bottom band must start at the lowest possible total (no gap below F) and
// the top band must start at or under the highest.
func (s *Scheme) validateBandCoverage() error {
	bottom := s.Bands[len(s.Bands)-1].Lower
	if bottom != s.MinPoints() {
		return &InvalidInputError{Reason: fmt.Sprintf("bottom band starts at %g, want %g", bottom, s.MinPoints())}
	}
	if s.Bands[0].Lower > s.MaxPoints() {
		return &InvalidInputError{Reason: fmt.Sprintf("top band starts at %g, above the maximum total %g", s.Bands[0].Lower, s.MaxPoints())}
	}
	return nil
}

// MinPoints is the lowest total the scheme can produce from valid scores.
func (s *Scheme) MinPoints() float64 {
	total := 0.0
	for _, c := range s.Components {
		total += c.Min * c.Weight
	}
	return total
}

// MaxPoints is the highest total the scheme can produce from valid scores.
func (s *Scheme) MaxPoints() float64 {
	total := 0.0
	for _, c := range s.Components {
		total += c.Max * c.Weight
	}
	return total
}

// TotalPoints computes the weighted total for a full set of component
// scores. The scheme itself is validated first; a broken scheme, a missing,
// unknown, out-of-range or NaN score all yield an InvalidInputError.
func (s *Scheme) TotalPoints(scores map[string]float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	total := 0.0
	for _, c := range s.Components {
		v, err := c.take(scores)
		if err != nil {
			return 0, err
		}
		total += v * c.Weight
	}
	if len(scores) != len(s.Components) {
		return 0, s.unknownComponent(scores)
	}
	return total, nil
}

// unknownComponent names the extra component deterministically: with more
// than one stray name, the alphabetically first is reported.
func (s *Scheme) unknownComponent(scores map[string]float64) error {
	known := make(map[string]bool, len(s.Components))
	for _, c := range s.Components {
		known[c.Name] = true
	}
	var unknown []string
	for name := range scores {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	if len(unknown) > 0 {
		return &InvalidInputError{Component: unknown[0], Reason: "unknown component"}
	}
	return &InvalidInputError{Reason: "malformed score set"}
}

func (c Component) take(scores map[string]float64) (float64, error) {
	v, ok := scores[c.Name]
	if !ok {
		return 0, &InvalidInputError{Component: c.Name, Reason: "missing component"}
	}
	if math.IsNaN(v) {
		return 0, &InvalidInputError{Component: c.Name, Value: v, Reason: "score is NaN"}
	}
	if v < c.Min || v > c.Max {
		return 0, &InvalidInputError{Component: c.Name, Value: v, Reason: fmt.Sprintf("score %g outside range [%g, %g]", v, c.Min, c.Max)}
	}
	return v, nil
}

// LetterFromPoints maps a total onto the band table: bands are walked top
// down and the first band whose Lower the total reaches wins. A total no
// band claims, including NaN and anything outside the reachable range,
// produces an OutOfRangeError; after TotalPoints has accepted the input
// that cannot occur.
func (s *Scheme) LetterFromPoints(points float64) (Letter, error) {
	if points > s.MaxPoints() {
		return "", &OutOfRangeError{Points: points}
	}
	for _, b := range s.Bands {
		if points >= b.Lower {
			return b.Letter, nil
		}
	}
	return "", &OutOfRangeError{Points: points}
}
