package fuzzy

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Strategy collapses the fuzzy output of a rule base into one crisp value
// over the active output domain. Implementations: Centroid, MeanOfMaxima.
type Strategy interface {
	Name() string
	Defuzzify(d Domain, rules []Rule, inputs map[string]float64) (float64, error)

	strategy()
}

// StrategyFromName maps "centroid" or "mom" to a serial strategy.
func StrategyFromName(name string) (Strategy, error) {
	switch name {
	case "centroid":
		return Centroid{}, nil
	case "mom":
		return MeanOfMaxima{}, nil
	default:
		return nil, fmt.Errorf("%w: defuzzification strategy %q", ErrUnknownIdentifier, name)
	}
}

// WithWorkers returns s configured to fan its sampling loop out over n workers.
// n <= 1 means serial.
func WithWorkers(s Strategy, n int) Strategy {
	switch v := s.(type) {
	case Centroid:
		v.Workers = n
		return v
	case MeanOfMaxima:
		v.Workers = n
		return v
	default:
		return s
	}
}

// Centroid is the discrete centre of area with unit sample width. Rule
// contributions at each sample are summed, not max-aggregated.
type Centroid struct {
	Workers int
}

func (Centroid) Name() string { return "centroid" }
func (Centroid) strategy()    {}

// Defuzzify returns NaN with ErrNoRuleFired when the aggregate area is zero
// or the quotient is not finite.
func (c Centroid) Defuzzify(d Domain, rules []Rule, inputs map[string]float64) (float64, error) {
	ws, err := strengths(rules, inputs)
	if err != nil {
		return math.NaN(), err
	}

	n := d.Len()
	fdom := make([]float64, n)
	forEachChunk(n, c.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			y := float64(d.Start + i)
			sum := 0.0
			for r, rule := range rules {
				sum += rule.Activation(ws[r], y)
			}
			fdom[i] = sum
		}
	})

	// Reduce serially so the summation order never depends on Workers.
	var num, den float64
	for i, v := range fdom {
		num += float64(d.Start+i) * v
		den += v
	}
	if den == 0 {
		return math.NaN(), fmt.Errorf("%w: zero aggregate area over [%d, %d)", ErrNoRuleFired, d.Start, d.End)
	}
	out := num / den
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return math.NaN(), fmt.Errorf("%w: centroid %v is not finite", ErrNoRuleFired, out)
	}
	return out, nil
}

// MeanOfMaxima averages, over all rules, every sample where that rule's
// activation is positive and equal to its own maximum (ties included).
type MeanOfMaxima struct {
	Workers int
}

func (MeanOfMaxima) Name() string { return "mom" }
func (MeanOfMaxima) strategy()    {}

func (m MeanOfMaxima) Defuzzify(d Domain, rules []Rule, inputs map[string]float64) (float64, error) {
	ws, err := strengths(rules, inputs)
	if err != nil {
		return math.NaN(), err
	}

	n := d.Len()
	maxima := make([][]float64, len(rules))
	forEachChunk(len(rules), m.Workers, func(lo, hi int) {
		acts := make([]float64, n)
		for r := lo; r < hi; r++ {
			maxima[r] = ruleMaxima(rules[r], ws[r], d, acts)
		}
	})

	var sum float64
	var count int
	for _, xs := range maxima {
		for _, x := range xs {
			sum += x
		}
		count += len(xs)
	}
	if count == 0 {
		return math.NaN(), fmt.Errorf("%w: no positive maximum over [%d, %d)", ErrNoActivation, d.Start, d.End)
	}
	return sum / float64(count), nil
}

// ruleMaxima returns the samples where one rule's activation peaks.
// acts is scratch space of length d.Len().
func ruleMaxima(rule Rule, strength float64, d Domain, acts []float64) []float64 {
	xmax := 0.0
	for i := range acts {
		a := rule.Activation(strength, float64(d.Start+i))
		acts[i] = a
		if a >= xmax {
			xmax = a
		}
	}
	var out []float64
	for i, a := range acts {
		if a > 0 && a == xmax {
			out = append(out, float64(d.Start+i))
		}
	}
	return out
}

// strengths evaluates every antecedent once. Strength depends only on the
// inputs, never on the output sample.
func strengths(rules []Rule, inputs map[string]float64) ([]float64, error) {
	ws := make([]float64, len(rules))
	for i, r := range rules {
		w, err := r.Strength(inputs)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		ws[i] = w
	}
	return ws, nil
}

// forEachChunk splits [0, n) into contiguous chunks and runs fn on each,
// concurrently when workers > 1. Chunks never overlap.
func forEachChunk(n, workers int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	if workers <= 1 || n == 1 {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
