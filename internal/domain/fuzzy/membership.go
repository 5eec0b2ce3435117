// Package fuzzy is the fuzzy-inference core: membership functions, hedges,
// linguistic variables, rules, defuzzification strategies, and the engine
// that ties them together. All types are pure Go with no I/O; everything is
// constructed once and read-only afterward.
package fuzzy

import (
	"fmt"
	"math"
)

// Shape identifies a membership function family.
type Shape int

const (
	ShapeTriangle Shape = iota
	ShapeTrapezoid
	ShapeUp
	ShapeDown
)

// shapeArity is the parameter count each shape takes, indexed by Shape.
var shapeArity = [4]int{3, 4, 2, 2}

// String returns the lowercase name used in definition files.
func (s Shape) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	case ShapeTrapezoid:
		return "trapezoid"
	case ShapeUp:
		return "up"
	case ShapeDown:
		return "down"
	default:
		return "unknown"
	}
}

// ShapeFromName maps a shape name to its Shape constant.
func ShapeFromName(name string) (Shape, error) {
	switch name {
	case "triangle":
		return ShapeTriangle, nil
	case "trapezoid":
		return ShapeTrapezoid, nil
	case "up":
		return ShapeUp, nil
	case "down":
		return ShapeDown, nil
	default:
		return 0, fmt.Errorf("%w: shape %q", ErrUnknownIdentifier, name)
	}
}

// Membership maps a crisp value to a degree of membership in a named term.
// The set of implementations is closed: Triangle, Trapezoid, Up, Down.
type Membership interface {
	Name() string
	Shape() Shape
	Params() []float64
	Compute(x float64) float64

	membership()
}

// NewMembership builds a membership function of the given shape.
// The parameter count must match the shape's arity, and parameters that
// would make a slope divide by zero are rejected.
func NewMembership(shape Shape, name string, params []float64) (Membership, error) {
	if shape < ShapeTriangle || shape > ShapeDown {
		return nil, fmt.Errorf("%w: shape %d", ErrUnknownIdentifier, int(shape))
	}
	if want := shapeArity[shape]; len(params) != want {
		return nil, fmt.Errorf("%w: %s %q needs %d values, got %d",
			ErrConfiguration, shape, name, want, len(params))
	}

	var m Membership
	switch shape {
	case ShapeTriangle:
		m = Triangle{name: name, a: params[0], b: params[1], c: params[2]}
	case ShapeTrapezoid:
		m = Trapezoid{name: name, a: params[0], b: params[1], c: params[2], d: params[3]}
	case ShapeUp:
		m = Up{name: name, a: params[0], b: params[1]}
	case ShapeDown:
		m = Down{Up{name: name, a: params[0], b: params[1]}}
	}
	if degenerate(shape, params) {
		return nil, fmt.Errorf("%w: %s %q has a zero-width slope %v",
			ErrConfiguration, shape, name, params)
	}
	return m, nil
}

// degenerate reports whether any slope denominator of the shape is zero.
func degenerate(shape Shape, p []float64) bool {
	switch shape {
	case ShapeTriangle:
		return p[1] == p[0] || p[2] == p[1]
	case ShapeTrapezoid:
		return p[1] == p[0] || p[3] == p[2]
	default:
		return p[1] == p[0]
	}
}

// Triangle rises linearly from a to a peak of 1 at b and falls back to 0 at c.
type Triangle struct {
	name    string
	a, b, c float64
}

func (t Triangle) Name() string      { return t.name }
func (t Triangle) Shape() Shape      { return ShapeTriangle }
func (t Triangle) Params() []float64 { return []float64{t.a, t.b, t.c} }
func (Triangle) membership()         {}

// Compute returns max(0, min(rising, falling)). Not clamped above; with a<b<c
// the peak is exactly 1.
func (t Triangle) Compute(x float64) float64 {
	g1 := (x - t.a) / (t.b - t.a)
	g2 := (t.c - x) / (t.c - t.b)
	return math.Max(0, math.Min(g1, g2))
}

// Trapezoid rises from a to b, holds 1 until c, and falls to 0 at d.
type Trapezoid struct {
	name       string
	a, b, c, d float64
}

func (t Trapezoid) Name() string      { return t.name }
func (t Trapezoid) Shape() Shape      { return ShapeTrapezoid }
func (t Trapezoid) Params() []float64 { return []float64{t.a, t.b, t.c, t.d} }
func (Trapezoid) membership()         {}

func (t Trapezoid) Compute(x float64) float64 {
	g1 := (x - t.a) / (t.b - t.a)
	g2 := (t.d - x) / (t.d - t.c)
	return math.Max(0, math.Min(1, math.Min(g1, g2)))
}

// Up is 0 below a, 1 above b, and a linear ramp in between.
type Up struct {
	name string
	a, b float64
}

func (u Up) Name() string      { return u.name }
func (u Up) Shape() Shape      { return ShapeUp }
func (u Up) Params() []float64 { return []float64{u.a, u.b} }
func (Up) membership()         {}

func (u Up) Compute(x float64) float64 {
	if x < u.a {
		return 0
	}
	if x > u.b {
		return 1
	}
	return (x - u.a) / (u.b - u.a)
}

// Down is the complement of Up over the same parameters.
type Down struct {
	up Up
}

func (d Down) Name() string      { return d.up.name }
func (d Down) Shape() Shape      { return ShapeDown }
func (d Down) Params() []float64 { return d.up.Params() }
func (Down) membership()         {}

func (d Down) Compute(x float64) float64 {
	return 1 - d.up.Compute(x)
}
