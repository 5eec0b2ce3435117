package app

import (
	"fmt"

	"github.com/corey/fuzzy/internal/domain/fuzzy"
	"github.com/corey/fuzzy/internal/domain/rulelang"
	"github.com/corey/fuzzy/internal/ports"
)

// BuildEngine turns a definition into a populated engine: variables first,
// then the strategy, then the rules in order (each rule sets the active
// output domain). A definition without a strategy builds an engine that
// fails every evaluation with fuzzy.ErrStrategyUndefined.
func BuildEngine(def *ports.Definition) (*fuzzy.Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("nil definition")
	}

	e := fuzzy.NewEngine()
	for _, spec := range def.Inputs {
		v, err := buildVariable(spec)
		if err != nil {
			return nil, fmt.Errorf("input %w", err)
		}
		e.AddInputVariable(v)
	}
	for _, spec := range def.Outputs {
		v, err := buildVariable(spec)
		if err != nil {
			return nil, fmt.Errorf("output %w", err)
		}
		e.AddOutputVariable(v)
	}

	if def.Strategy != "" {
		s, err := fuzzy.StrategyFromName(def.Strategy)
		if err != nil {
			return nil, err
		}
		e.SetStrategy(fuzzy.WithWorkers(s, def.Workers))
	}

	rules, err := rulelang.ParseAll(def.Rules, e)
	if err != nil {
		return nil, err
	}
	for i, r := range rules {
		if err := e.AddRule(r); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return e, nil
}

func buildVariable(spec ports.VariableSpec) (*fuzzy.Variable, error) {
	terms := make([]fuzzy.Membership, 0, len(spec.Terms))
	for _, ts := range spec.Terms {
		shape, err := fuzzy.ShapeFromName(ts.Shape)
		if err != nil {
			return nil, fmt.Errorf("%q term %q: %w", spec.Name, ts.Name, err)
		}
		m, err := fuzzy.NewMembership(shape, ts.Name, ts.Params)
		if err != nil {
			return nil, fmt.Errorf("%q term %q: %w", spec.Name, ts.Name, err)
		}
		terms = append(terms, m)
	}
	v, err := fuzzy.NewVariable(spec.Name, spec.Start, spec.End, terms...)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", spec.Name, err)
	}
	return v, nil
}
