package fuzzy

import "fmt"

// Domain is a half-open integer range [Start, End) sampled at unit steps.
type Domain struct {
	Start int
	End   int
}

// Len returns the number of integer samples in the domain.
func (d Domain) Len() int {
	if d.End < d.Start {
		return 0
	}
	return d.End - d.Start
}

// Variable is a linguistic variable: a set of named membership functions
// over one numeric domain. Inputs and outputs share this type.
type Variable struct {
	name   string
	domain Domain
	terms  map[string]Membership
	order  []string
}

// NewVariable builds a variable over [start, end) with the given terms.
// Term names must be unique within the variable.
func NewVariable(name string, start, end int, terms ...Membership) (*Variable, error) {
	if end < start {
		return nil, fmt.Errorf("%w: variable %q has inverted domain [%d, %d)",
			ErrConfiguration, name, start, end)
	}
	v := &Variable{
		name:   name,
		domain: Domain{Start: start, End: end},
		terms:  make(map[string]Membership, len(terms)),
		order:  make([]string, 0, len(terms)),
	}
	for _, t := range terms {
		if _, dup := v.terms[t.Name()]; dup {
			return nil, fmt.Errorf("%w: variable %q declares term %q twice",
				ErrConfiguration, name, t.Name())
		}
		v.terms[t.Name()] = t
		v.order = append(v.order, t.Name())
	}
	return v, nil
}

func (v *Variable) Name() string   { return v.name }
func (v *Variable) Domain() Domain { return v.domain }

// Term looks up a membership function by name.
func (v *Variable) Term(name string) (Membership, bool) {
	m, ok := v.terms[name]
	return m, ok
}

// Terms returns the membership functions in declaration order.
func (v *Variable) Terms() []Membership {
	out := make([]Membership, len(v.order))
	for i, name := range v.order {
		out[i] = v.terms[name]
	}
	return out
}
