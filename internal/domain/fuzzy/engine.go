package fuzzy

import (
	"fmt"
	"math"
)

// Engine holds the input and output variables, the rule base, the active
// output domain, and the defuzzification strategy.
//
// The active domain is a single pair overwritten by every AddRule with the
// domain of that rule's output variable, so rules targeting outputs with
// different domains are all evaluated over the last one. An engine is
// populated once and then only read; concurrent Evaluate calls are safe
// after setup.
type Engine struct {
	inputs   map[string]*Variable
	outputs  map[string]*Variable
	rules    []Rule
	domain   Domain
	strategy Strategy
}

// NewEngine returns an empty engine with no strategy selected.
func NewEngine() *Engine {
	return &Engine{
		inputs:  make(map[string]*Variable),
		outputs: make(map[string]*Variable),
	}
}

// AddInputVariable registers v as an input. A same-named input is replaced.
func (e *Engine) AddInputVariable(v *Variable) {
	e.inputs[v.Name()] = v
}

// AddOutputVariable registers v as an output. A same-named output is replaced.
func (e *Engine) AddOutputVariable(v *Variable) {
	e.outputs[v.Name()] = v
}

// Input looks up an input variable by name.
func (e *Engine) Input(name string) (*Variable, bool) {
	v, ok := e.inputs[name]
	return v, ok
}

// Output looks up an output variable by name.
func (e *Engine) Output(name string) (*Variable, bool) {
	v, ok := e.outputs[name]
	return v, ok
}

// SetStrategy selects the defuzzification strategy.
func (e *Engine) SetStrategy(s Strategy) {
	e.strategy = s
}

// SetStrategyByName selects "centroid" or "mom".
func (e *Engine) SetStrategyByName(name string) error {
	s, err := StrategyFromName(name)
	if err != nil {
		return err
	}
	e.strategy = s
	return nil
}

// Strategy returns the selected strategy, or nil.
func (e *Engine) Strategy() Strategy { return e.strategy }

// AddRule appends r and makes its output variable's domain the active one.
func (e *Engine) AddRule(r Rule) error {
	out, ok := e.outputs[r.Consequent.Variable]
	if !ok {
		return fmt.Errorf("%w: output variable %q", ErrUnknownIdentifier, r.Consequent.Variable)
	}
	e.rules = append(e.rules, r)
	e.domain = out.Domain()
	return nil
}

// Rules returns the rule base in insertion order.
func (e *Engine) Rules() []Rule { return e.rules }

// Domain returns the active output domain.
func (e *Engine) Domain() Domain { return e.domain }

// Evaluate computes the crisp output for the named input values.
func (e *Engine) Evaluate(inputs map[string]float64) (float64, error) {
	if e.strategy == nil {
		return math.NaN(), ErrStrategyUndefined
	}
	return e.strategy.Defuzzify(e.domain, e.rules, inputs)
}
