package fuzzy

import "errors"

// Error kinds. Every failure returned by this package wraps exactly one of
// these, so callers match with errors.Is and read the rest of the message
// for context.
var (
	// ErrConfiguration reports a malformed membership function or variable.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownIdentifier reports an unrecognized hedge, operator, shape,
	// strategy, variable, or term name.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrUndefinedVariable reports an antecedent input missing from the
	// mapping supplied to an evaluation.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrStrategyUndefined reports an evaluation attempted before a
	// defuzzification strategy was selected.
	ErrStrategyUndefined = errors.New("defuzzification strategy undefined")

	// ErrNoActivation reports an empty pool of maxima in mean-of-maxima.
	ErrNoActivation = errors.New("no rule activation")

	// ErrNoRuleFired reports a centroid whose aggregated area is zero or whose
	// result is not finite. The accompanying value is NaN.
	ErrNoRuleFired = errors.New("no rule fired")

	// ErrSyntax reports a malformed textual rule.
	ErrSyntax = errors.New("rule syntax error")
)
