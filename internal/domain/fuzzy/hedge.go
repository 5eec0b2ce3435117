package fuzzy

import (
	"fmt"
	"math"
	"strings"
)

// hedgeExponents maps each hedge name to the power it raises a degree to.
var hedgeExponents = map[string]float64{
	"very":      2,
	"extremely": 3,
	"somewhat":  0.5,
	"slightly":  1.0 / 3.0,
}

// IsHedge reports whether name is one of the known hedges.
func IsHedge(name string) bool {
	_, ok := hedgeExponents[name]
	return ok
}

// Hedge sharpens or softens a membership degree by exponentiation.
// A hedge owns the hedge it wraps; chains are never shared or cyclic.
// A nil *Hedge is the identity.
type Hedge struct {
	name  string
	p     float64
	inner *Hedge
}

// NewHedge returns the named hedge wrapping inner (which may be nil).
func NewHedge(name string, inner *Hedge) (*Hedge, error) {
	p, ok := hedgeExponents[name]
	if !ok {
		return nil, fmt.Errorf("%w: hedge %q", ErrUnknownIdentifier, name)
	}
	return &Hedge{name: name, p: p, inner: inner}, nil
}

// ChainHedges builds a chain from names in the order they were written.
// The last name becomes the outermost hedge. An empty list yields nil.
func ChainHedges(names []string) (*Hedge, error) {
	var h *Hedge
	for _, name := range names {
		next, err := NewHedge(name, h)
		if err != nil {
			return nil, err
		}
		h = next
	}
	return h, nil
}

// Compute applies the chain to x. The inner chain only runs for x > 0.
func (h *Hedge) Compute(x float64) float64 {
	if h == nil {
		return x
	}
	y := x
	if h.inner != nil && x > 0 {
		y = h.inner.Compute(x)
	}
	return math.Pow(y, h.p)
}

// Exponent returns the power of the outermost hedge.
func (h *Hedge) Exponent() float64 {
	if h == nil {
		return 1
	}
	return h.p
}

// Names returns the chain in written order (innermost first), the inverse of ChainHedges.
func (h *Hedge) Names() []string {
	var names []string
	for cur := h; cur != nil; cur = cur.inner {
		names = append(names, cur.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

func (h *Hedge) String() string {
	return strings.Join(h.Names(), " ")
}
