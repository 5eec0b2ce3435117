package fuzzy

import (
	"fmt"
	"math"
)

// Operator joins an antecedent clause to the next one.
type Operator int

const (
	OpNone Operator = iota // terminates the antecedent chain
	OpAnd
	OpOr
	OpNot
)

func (o Operator) String() string {
	switch o {
	case OpNone:
		return ""
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	default:
		return "unknown"
	}
}

// OperatorFromName maps an operator token to its Operator constant.
func OperatorFromName(name string) (Operator, error) {
	switch name {
	case "and":
		return OpAnd, nil
	case "or":
		return OpOr, nil
	case "not":
		return OpNot, nil
	default:
		return OpNone, fmt.Errorf("%w: operator %q", ErrUnknownIdentifier, name)
	}
}

// IsOperator reports whether name is an operator token.
func IsOperator(name string) bool {
	_, err := OperatorFromName(name)
	return err == nil
}

// combine folds the next clause degree into the accumulator.
// Not ignores next and negates the accumulator.
func (o Operator) combine(acc, next float64) float64 {
	switch o {
	case OpAnd:
		return math.Min(acc, next)
	case OpOr:
		return math.Max(acc, next)
	case OpNot:
		return 1 - acc
	default:
		return next
	}
}

// Clause is one "<input> is [hedges] <term>" element of an antecedent.
// Op links it to the following clause and is OpNone on the last one.
type Clause struct {
	Variable string
	Term     Membership
	Hedge    *Hedge
	Op       Operator
}

// Consequent is the "then <output> is [hedges] <term>" part of a rule.
type Consequent struct {
	Variable string
	Term     Membership
	Hedge    *Hedge
}

// Rule is an antecedent chain plus one consequent. Text keeps the source
// form when the rule came from the rule language.
type Rule struct {
	Antecedent []Clause
	Consequent Consequent
	Text       string
}

// NewRule validates the clause chain: at least one clause, every clause but
// the last carries an operator, and the last carries none.
func NewRule(antecedent []Clause, consequent Consequent) (Rule, error) {
	if len(antecedent) == 0 {
		return Rule{}, fmt.Errorf("%w: rule has no antecedent", ErrConfiguration)
	}
	last := len(antecedent) - 1
	for i, c := range antecedent {
		if c.Term == nil {
			return Rule{}, fmt.Errorf("%w: clause %d on %q has no term", ErrConfiguration, i, c.Variable)
		}
		if i == last && c.Op != OpNone {
			return Rule{}, fmt.Errorf("%w: last clause on %q carries operator %q",
				ErrConfiguration, c.Variable, c.Op)
		}
		if i < last && c.Op == OpNone {
			return Rule{}, fmt.Errorf("%w: clause %d on %q is not joined to the next",
				ErrConfiguration, i, c.Variable)
		}
	}
	if consequent.Term == nil {
		return Rule{}, fmt.Errorf("%w: consequent on %q has no term", ErrConfiguration, consequent.Variable)
	}
	return Rule{Antecedent: antecedent, Consequent: consequent}, nil
}

// Strength evaluates the antecedent as a strict left-to-right fold, so
// "A and B or C" is (A and B) or C.
func (r Rule) Strength(inputs map[string]float64) (float64, error) {
	acc := 0.0
	pending := OpNone
	for _, c := range r.Antecedent {
		x, ok := inputs[c.Variable]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUndefinedVariable, c.Variable)
		}
		degree := c.Hedge.Compute(c.Term.Compute(x))
		acc = pending.combine(acc, degree)
		pending = c.Op
	}
	return acc, nil
}

// Activation is the rule's output at domain point y for a given antecedent strength.
func (r Rule) Activation(strength, y float64) float64 {
	return r.Consequent.Hedge.Compute(r.Consequent.Term.Compute(y) * strength)
}
