package grade

import "fmt"

// InvalidInputError reports a score set that cannot be evaluated: a component
// missing or unknown, a value outside its valid range or NaN, or a scheme
// whose weights do not sum to 1.0.
type InvalidInputError struct {
	Component string  `json:"component,omitempty"` // offending component, empty for scheme-level problems
	Value     float64 `json:"value,omitempty"`     // offending value, zero when the problem is structural
	Reason    string  `json:"reason"`
}

func (e *InvalidInputError) Error() string {
	if e.Component == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: component %q: %s", e.Component, e.Reason)
}

// OutOfRangeError reports a computed total that matched no grade band. With a
// validated scheme this cannot happen; it exists so a band-table bug surfaces
// as an error instead of a silently wrong grade.
type OutOfRangeError struct {
	Points float64 `json:"points"`
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("total points %g matched no grade band", e.Points)
}
