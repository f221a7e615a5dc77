package grade

import (
	"fmt"
	"reflect"
)

// Strategy selects which evaluator implementation backs Evaluate.
type Strategy string

const (
	// StrategyDecomposed scores through TotalPoints and LetterFromPoints.
	StrategyDecomposed Strategy = "decomposed"
	// StrategyMonolithic scores through a single inlined function, kept as a
	// worked example of what the complexity gate exists to catch.
	StrategyMonolithic Strategy = "monolithic"
)

// ParseStrategy validates a strategy name from flags or config.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyDecomposed, StrategyMonolithic:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q (valid: %s, %s)", s, StrategyDecomposed, StrategyMonolithic)
}

// Evaluator turns a full set of component scores into a letter grade.
// Implementations are stateless and safe to reuse.
type Evaluator interface {
	Evaluate(scores map[string]float64) (Letter, error)
}

// NewEvaluator builds an evaluator for the given strategy. A nil scheme
// means the default scheme. The monolithic strategy has the default scheme
// baked into its branches and refuses any other.
func NewEvaluator(strategy Strategy, scheme *Scheme) (Evaluator, error) {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	switch strategy {
	case StrategyDecomposed:
		return &decomposedEvaluator{scheme: scheme}, nil
	case StrategyMonolithic:
		if !reflect.DeepEqual(scheme, DefaultScheme()) {
			return nil, fmt.Errorf("strategy %q supports only the default scheme", strategy)
		}
		return &monolithicEvaluator{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (valid: %s, %s)", strategy, StrategyDecomposed, StrategyMonolithic)
	}
}

// decomposedEvaluator scores by composing the scheme's two small steps.
type decomposedEvaluator struct {
	scheme *Scheme
}

func (e *decomposedEvaluator) Evaluate(scores map[string]float64) (Letter, error) {
	total, err := e.scheme.TotalPoints(scores)
	if err != nil {
		return "", err
	}
	return e.scheme.LetterFromPoints(total)
}
