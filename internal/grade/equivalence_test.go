package grade

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// The monolithic evaluator must be indistinguishable from the decomposed
// one from the outside: same letter for every valid input, same error kind
// for every invalid one. These tests sweep both hand-picked boundaries and
// a seeded random sample.

func bothEvaluators(t *testing.T) (Evaluator, Evaluator) {
	t.Helper()
	decomposed, err := NewEvaluator(StrategyDecomposed, nil)
	if err != nil {
		t.Fatalf("NewEvaluator(decomposed) error = %v", err)
	}
	monolithic, err := NewEvaluator(StrategyMonolithic, nil)
	if err != nil {
		t.Fatalf("NewEvaluator(monolithic) error = %v", err)
	}
	return decomposed, monolithic
}

func assertSameOutcome(t *testing.T, scores map[string]float64, decomposed, monolithic Evaluator) {
	t.Helper()

	dLetter, dErr := decomposed.Evaluate(scores)
	mLetter, mErr := monolithic.Evaluate(scores)

	if (dErr == nil) != (mErr == nil) {
		t.Fatalf("Evaluate(%v): decomposed err = %v, monolithic err = %v", scores, dErr, mErr)
	}
	if dErr == nil {
		if dLetter != mLetter {
			t.Fatalf("Evaluate(%v): decomposed = %q, monolithic = %q", scores, dLetter, mLetter)
		}
		return
	}

	// Errors must agree in kind even when the two paths notice different
	// details first.
	var dInvalid, mInvalid *InvalidInputError
	var dRange, mRange *OutOfRangeError
	switch {
	case errors.As(dErr, &dInvalid):
		if !errors.As(mErr, &mInvalid) {
			t.Fatalf("Evaluate(%v): decomposed = %T, monolithic = %T", scores, dErr, mErr)
		}
	case errors.As(dErr, &dRange):
		if !errors.As(mErr, &mRange) {
			t.Fatalf("Evaluate(%v): decomposed = %T, monolithic = %T", scores, dErr, mErr)
		}
	default:
		t.Fatalf("Evaluate(%v): unexpected error type %T", scores, dErr)
	}
}

func TestEquivalenceAtBoundaries(t *testing.T) {
	decomposed, monolithic := bothEvaluators(t)

	// With equal scores across components the total equals the score, so
	// each value below exercises one exact band edge or its neighborhood.
	edges := []float64{
		0, 0.001, 59, 59.999, 60, 60.001, 69.999, 70, 79.999, 80,
		89.999, 90, 90.001, 99.999, 100,
	}
	for _, v := range edges {
		assertSameOutcome(t, map[string]float64{
			"homework": v, "exams": v, "participation": v,
		}, decomposed, monolithic)
	}
}

func TestEquivalenceOnInvalidInputs(t *testing.T) {
	decomposed, monolithic := bothEvaluators(t)

	inputs := []map[string]float64{
		{"homework": -5, "exams": 80, "participation": 100},
		{"homework": 90, "exams": -0.001, "participation": 100},
		{"homework": 90, "exams": 80, "participation": 100.001},
		{"homework": 200, "exams": 200, "participation": 200},
		{"homework": 90, "exams": 80},
		{"participation": 100},
		{},
		nil,
		{"homework": 90, "exams": 80, "participation": 100, "extra": 1},
		{"extra": 1},
		{"homework": math.NaN(), "exams": 80, "participation": 100},
		{"homework": 90, "exams": 80, "participation": math.NaN()},
		{"homework": math.Inf(1), "exams": 80, "participation": 100},
		{"homework": math.Inf(-1), "exams": 80, "participation": 100},
	}
	for _, scores := range inputs {
		assertSameOutcome(t, scores, decomposed, monolithic)
	}
}

func TestEquivalenceRandomSweep(t *testing.T) {
	decomposed, monolithic := bothEvaluators(t)
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		scores := map[string]float64{
			"homework":      r.Float64() * 100,
			"exams":         r.Float64() * 100,
			"participation": r.Float64() * 100,
		}

		// A slice of the sweep deliberately wanders out of range or mangles
		// the score set so the error paths get random coverage too.
		switch i % 10 {
		case 7:
			scores["homework"] = r.Float64()*40 - 20
		case 8:
			scores["exams"] = 100 + r.Float64()*10
		case 9:
			delete(scores, "participation")
		}

		assertSameOutcome(t, scores, decomposed, monolithic)
	}
}

// Evaluating the evaluation's input again must change nothing: grades are
// a pure function of the score set.
func TestEquivalenceStableAcrossRepeats(t *testing.T) {
	decomposed, monolithic := bothEvaluators(t)
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		scores := map[string]float64{
			"homework":      math.Floor(r.Float64()*1000) / 10,
			"exams":         math.Floor(r.Float64()*1000) / 10,
			"participation": math.Floor(r.Float64()*1000) / 10,
		}
		d1, err1 := decomposed.Evaluate(scores)
		d2, err2 := decomposed.Evaluate(scores)
		m1, merr1 := monolithic.Evaluate(scores)
		m2, merr2 := monolithic.Evaluate(scores)

		if d1 != d2 || (err1 == nil) != (err2 == nil) {
			t.Fatalf("decomposed not stable on %v: %q/%v then %q/%v", scores, d1, err1, d2, err2)
		}
		if m1 != m2 || (merr1 == nil) != (merr2 == nil) {
			t.Fatalf("monolithic not stable on %v: %q/%v then %q/%v", scores, m1, merr1, m2, merr2)
		}
		if d1 != m1 {
			t.Fatalf("paths disagree on %v: decomposed %q, monolithic %q", scores, d1, m1)
		}
	}
}
