package complexity

import "sort"

// Violation is one function over the threshold.
type Violation struct {
	Function  string `json:"function"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Score     int    `json:"score"`
	Threshold int    `json:"threshold"`
	Over      int    `json:"over"`
}

// Report is the outcome of applying a threshold to a set of scores.
type Report struct {
	Threshold  int         `json:"threshold"`
	Functions  []FuncScore `json:"functions"`
	Violations []Violation `json:"violations"`
	Pass       bool        `json:"pass"`
}

// BuildReport applies a threshold to a set of scores. Pass is true exactly
// when no function exceeds the threshold. Violations are sorted worst
// first, ties broken by file then line.
func BuildReport(scores []FuncScore, threshold int) *Report {
	r := &Report{Threshold: threshold, Functions: scores}
	for _, s := range scores {
		if s.Score > threshold {
			r.Violations = append(r.Violations, Violation{
				Function:  s.Function,
				File:      s.File,
				Line:      s.Line,
				Score:     s.Score,
				Threshold: threshold,
				Over:      s.Score - threshold,
			})
		}
	}
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	r.Pass = len(r.Violations) == 0
	return r
}

// Summary holds the aggregate statistics the summary command prints.
type Summary struct {
	TotalFunctions int            `json:"total_functions"`
	AvgScore       float64        `json:"avg_score"`
	MaxScore       int            `json:"max_score"`
	Threshold      int            `json:"threshold"`
	OverThreshold  int            `json:"over_threshold"`
	Distribution   map[string]int `json:"distribution"`
	Worst          []FuncScore    `json:"worst"`
}

// Buckets used by Summary.Distribution, lowest first.
var Buckets = []string{"1-5", "6-10", "11-20", "21+"}

func bucket(score int) string {
	switch {
	case score <= 5:
		return Buckets[0]
	case score <= 10:
		return Buckets[1]
	case score <= 20:
		return Buckets[2]
	default:
		return Buckets[3]
	}
}

// Summarize aggregates scores into a Summary, keeping the topN worst
// functions for display.
func Summarize(scores []FuncScore, threshold, topN int) Summary {
	s := Summary{
		Threshold:    threshold,
		Distribution: make(map[string]int),
	}
	total := 0
	for _, fs := range scores {
		s.TotalFunctions++
		total += fs.Score
		s.Distribution[bucket(fs.Score)]++
		if fs.Score > s.MaxScore {
			s.MaxScore = fs.Score
		}
		if fs.Score > threshold {
			s.OverThreshold++
		}
	}
	if s.TotalFunctions > 0 {
		s.AvgScore = float64(total) / float64(s.TotalFunctions)
	}

	worst := make([]FuncScore, len(scores))
	copy(worst, scores)
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].Score > worst[j].Score
	})
	if len(worst) > topN {
		worst = worst[:topN]
	}
	s.Worst = worst
	return s
}
