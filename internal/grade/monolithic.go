package grade

import "math"

// monolithicEvaluator is the one-function rendition of the default scheme.
// Validation, weighting and the band walk are all inlined; nothing is shared
// with the decomposed path. It returns the same letter or error kind as the
// decomposed evaluator for every input, and it stays in the tree as the
// counterexample the complexity gate is pointed at.
type monolithicEvaluator struct{}

func (e *monolithicEvaluator) Evaluate(scores map[string]float64) (Letter, error) {
	for name := range scores {
		if name != "homework" && name != "exams" && name != "participation" {
			return "", &InvalidInputError{Component: name, Reason: "unknown component"}
		}
	}
	hw, ok := scores["homework"]
	if !ok {
		return "", &InvalidInputError{Component: "homework", Reason: "missing component"}
	}
	ex, ok := scores["exams"]
	if !ok {
		return "", &InvalidInputError{Component: "exams", Reason: "missing component"}
	}
	pa, ok := scores["participation"]
	if !ok {
		return "", &InvalidInputError{Component: "participation", Reason: "missing component"}
	}
	if math.IsNaN(hw) {
		return "", &InvalidInputError{Component: "homework", Value: hw, Reason: "score is NaN"}
	}
	if math.IsNaN(ex) {
		return "", &InvalidInputError{Component: "exams", Value: ex, Reason: "score is NaN"}
	}
	if math.IsNaN(pa) {
		return "", &InvalidInputError{Component: "participation", Value: pa, Reason: "score is NaN"}
	}
	if hw < 0 {
		return "", &InvalidInputError{Component: "homework", Value: hw, Reason: "score below 0"}
	} else if hw > 100 {
		return "", &InvalidInputError{Component: "homework", Value: hw, Reason: "score above 100"}
	} else {
		if ex < 0 {
			return "", &InvalidInputError{Component: "exams", Value: ex, Reason: "score below 0"}
		} else if ex > 100 {
			return "", &InvalidInputError{Component: "exams", Value: ex, Reason: "score above 100"}
		} else {
			if pa < 0 {
				return "", &InvalidInputError{Component: "participation", Value: pa, Reason: "score below 0"}
			} else if pa > 100 {
				return "", &InvalidInputError{Component: "participation", Value: pa, Reason: "score above 100"}
			} else {
				if hw == 100 && ex == 100 && pa == 100 {
					return LetterA, nil
				}
				total := hw*0.30 + ex*0.50 + pa*0.20
				if total < 0 || total > 100 || math.IsNaN(total) {
					return "", &OutOfRangeError{Points: total}
				}
				if total >= 90 {
					if total <= 100 {
						return LetterA, nil
					}
					return "", &OutOfRangeError{Points: total}
				} else if total >= 80 {
					if total < 90 {
						return LetterB, nil
					}
					return "", &OutOfRangeError{Points: total}
				} else if total >= 70 {
					if total < 80 {
						return LetterC, nil
					}
					return "", &OutOfRangeError{Points: total}
				} else if total >= 60 {
					if total < 70 {
						return LetterD, nil
					}
					return "", &OutOfRangeError{Points: total}
				} else if total >= 0 {
					if total < 60 {
						return LetterF, nil
					}
					return "", &OutOfRangeError{Points: total}
				} else {
					return "", &OutOfRangeError{Points: total}
				}
			}
		}
	}
}
