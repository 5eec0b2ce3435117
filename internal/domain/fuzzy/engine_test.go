package fuzzy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVar(t *testing.T, name string, start, end int, terms ...Membership) *Variable {
	t.Helper()
	v, err := NewVariable(name, start, end, terms...)
	require.NoError(t, err)
	return v
}

// simpleRule is "if <in> is <inTerm> then <out> is <outTerm>".
func simpleRule(t *testing.T, in string, inTerm Membership, out string, outTerm Membership) Rule {
	t.Helper()
	r, err := NewRule(
		[]Clause{{Variable: in, Term: inTerm}},
		Consequent{Variable: out, Term: outTerm},
	)
	require.NoError(t, err)
	return r
}

// fanEngine is the temp/fan example: temp=Triangle(0,50,100) on [0,100),
// fan=Up(0,10) on [0,10), one rule "if temp is temp then fan is fan".
func fanEngine(t *testing.T, strategy Strategy) *Engine {
	t.Helper()
	temp := mustMF(t, ShapeTriangle, "temp", 0, 50, 100)
	fan := mustMF(t, ShapeUp, "fan", 0, 10)

	e := NewEngine()
	e.AddInputVariable(mustVar(t, "temp", 0, 100, temp))
	e.AddOutputVariable(mustVar(t, "fan", 0, 10, fan))
	require.NoError(t, e.AddRule(simpleRule(t, "temp", temp, "fan", fan)))
	e.SetStrategy(strategy)
	return e
}

func TestCentroid_FanScenario(t *testing.T) {
	e := fanEngine(t, Centroid{})
	got, err := e.Evaluate(map[string]float64{"temp": 50})
	require.NoError(t, err)
	// fdom[y] = y/10 on 0..9 → Σy²/Σy = 285/45
	assert.InDelta(t, 285.0/45.0, got, 1e-12)
	assert.Greater(t, got, 5.0)
	assert.Less(t, got, 10.0)
}

func TestCentroid_Idempotent(t *testing.T) {
	e := fanEngine(t, Centroid{})
	in := map[string]float64{"temp": 37.3}
	a, err := e.Evaluate(in)
	require.NoError(t, err)
	b, err := e.Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCentroid_NoRuleFired(t *testing.T) {
	e := fanEngine(t, Centroid{})
	got, err := e.Evaluate(map[string]float64{"temp": 0})
	assert.ErrorIs(t, err, ErrNoRuleFired)
	assert.True(t, math.IsNaN(got))
}

func TestCentroid_SumsContributions(t *testing.T) {
	// low = Down(0,2) → 1, .5, 0; high = Up(0,2) → 0, .5, 1 on [0,3).
	// Strengths 1 and .5 give fdom = [1, .75, .5] → 1.75/2.25.
	// Max-aggregation would give [1, .5, .5] → 0.75 instead.
	ramp := mustMF(t, ShapeUp, "ramp", 0, 10)
	low := mustMF(t, ShapeDown, "low", 0, 2)
	high := mustMF(t, ShapeUp, "high", 0, 2)

	e := NewEngine()
	e.AddInputVariable(mustVar(t, "a", 0, 10, ramp))
	e.AddInputVariable(mustVar(t, "b", 0, 10, ramp))
	e.AddOutputVariable(mustVar(t, "out", 0, 3, low, high))
	require.NoError(t, e.AddRule(simpleRule(t, "a", ramp, "out", low)))
	require.NoError(t, e.AddRule(simpleRule(t, "b", ramp, "out", high)))
	e.SetStrategy(Centroid{})

	got, err := e.Evaluate(map[string]float64{"a": 10, "b": 5})
	require.NoError(t, err)
	assert.InDelta(t, 1.75/2.25, got, 1e-12)
}

func TestMoM_DisjointPeaks(t *testing.T) {
	temp := mustMF(t, ShapeTriangle, "temp", 0, 50, 100)
	p1 := mustMF(t, ShapeTriangle, "p1", 0, 2, 4)
	p2 := mustMF(t, ShapeTriangle, "p2", 5, 7, 9)

	e := NewEngine()
	e.AddInputVariable(mustVar(t, "temp", 0, 100, temp))
	e.AddOutputVariable(mustVar(t, "out", 0, 10, p1, p2))
	require.NoError(t, e.AddRule(simpleRule(t, "temp", temp, "out", p1)))
	require.NoError(t, e.AddRule(simpleRule(t, "temp", temp, "out", p2)))
	require.NoError(t, e.SetStrategyByName("mom"))

	got, err := e.Evaluate(map[string]float64{"temp": 50})
	require.NoError(t, err)
	assert.Equal(t, (2.0+7.0)/2, got)
}

func TestMoM_TiesIncluded(t *testing.T) {
	temp := mustMF(t, ShapeTriangle, "temp", 0, 50, 100)
	plateau := mustMF(t, ShapeTrapezoid, "plateau", 0, 2, 4, 6)

	e := NewEngine()
	e.AddInputVariable(mustVar(t, "temp", 0, 100, temp))
	e.AddOutputVariable(mustVar(t, "out", 0, 10, plateau))
	require.NoError(t, e.AddRule(simpleRule(t, "temp", temp, "out", plateau)))
	e.SetStrategy(MeanOfMaxima{})

	// plateau is 1 at 2, 3, 4
	got, err := e.Evaluate(map[string]float64{"temp": 25})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
}

func TestMoM_NoActivation(t *testing.T) {
	e := fanEngine(t, MeanOfMaxima{})
	got, err := e.Evaluate(map[string]float64{"temp": 100})
	assert.ErrorIs(t, err, ErrNoActivation)
	assert.True(t, math.IsNaN(got))
}

func TestEvaluate_MissingInput(t *testing.T) {
	for _, s := range []Strategy{Centroid{}, MeanOfMaxima{}} {
		e := fanEngine(t, s)
		_, err := e.Evaluate(map[string]float64{"humidity": 40})
		assert.ErrorIs(t, err, ErrUndefinedVariable, s.Name())
	}
}

func TestEvaluate_MissingInputEmptyDomain(t *testing.T) {
	ramp := mustMF(t, ShapeUp, "ramp", 0, 10)
	e := NewEngine()
	e.AddInputVariable(mustVar(t, "a", 0, 10, ramp))
	e.AddOutputVariable(mustVar(t, "out", 5, 5, ramp))
	require.NoError(t, e.AddRule(simpleRule(t, "a", ramp, "out", ramp)))
	e.SetStrategy(Centroid{})

	_, err := e.Evaluate(map[string]float64{})
	assert.ErrorIs(t, err, ErrUndefinedVariable)
}

func TestEvaluate_StrategyUndefined(t *testing.T) {
	e := fanEngine(t, nil)
	got, err := e.Evaluate(map[string]float64{"temp": 50})
	assert.ErrorIs(t, err, ErrStrategyUndefined)
	assert.True(t, math.IsNaN(got))

	assert.ErrorIs(t, e.SetStrategyByName("bisector"), ErrUnknownIdentifier)
	assert.Nil(t, e.Strategy())
}

func TestEngine_ActiveDomainIsLastRule(t *testing.T) {
	ramp := mustMF(t, ShapeUp, "ramp", 0, 10)
	e := NewEngine()
	e.AddInputVariable(mustVar(t, "a", 0, 10, ramp))
	e.AddOutputVariable(mustVar(t, "small", 0, 10, ramp))
	e.AddOutputVariable(mustVar(t, "large", 100, 400, ramp))

	require.NoError(t, e.AddRule(simpleRule(t, "a", ramp, "small", ramp)))
	assert.Equal(t, Domain{Start: 0, End: 10}, e.Domain())
	require.NoError(t, e.AddRule(simpleRule(t, "a", ramp, "large", ramp)))
	assert.Equal(t, Domain{Start: 100, End: 400}, e.Domain())
	require.NoError(t, e.AddRule(simpleRule(t, "a", ramp, "small", ramp)))
	assert.Equal(t, Domain{Start: 0, End: 10}, e.Domain())
	assert.Len(t, e.Rules(), 3)
}

func TestEngine_AddRuleUnknownOutput(t *testing.T) {
	ramp := mustMF(t, ShapeUp, "ramp", 0, 10)
	e := NewEngine()
	err := e.AddRule(simpleRule(t, "a", ramp, "ghost", ramp))
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
	assert.Empty(t, e.Rules())
}

// wideEngine has enough rules and samples for the parallel paths to split work.
func wideEngine(t *testing.T, s Strategy) *Engine {
	t.Helper()
	e := NewEngine()
	in := mustMF(t, ShapeTriangle, "mid", 0, 500, 1000)
	e.AddInputVariable(mustVar(t, "x", 0, 1000, in))

	var terms []Membership
	for i := 0; i < 16; i++ {
		lo := float64(i * 60)
		terms = append(terms, mustMF(t, ShapeTrapezoid, string(rune('a'+i)), lo, lo+20, lo+45, lo+90))
	}
	e.AddOutputVariable(mustVar(t, "y", 0, 1000, terms...))
	very, err := NewHedge("very", nil)
	require.NoError(t, err)
	for _, term := range terms {
		r, err := NewRule(
			[]Clause{{Variable: "x", Term: in, Hedge: very}},
			Consequent{Variable: "y", Term: term},
		)
		require.NoError(t, err)
		require.NoError(t, e.AddRule(r))
	}
	e.SetStrategy(s)
	return e
}

func TestParallel_BitIdentical(t *testing.T) {
	in := map[string]float64{"x": 321.5}
	for _, name := range []string{"centroid", "mom"} {
		s, err := StrategyFromName(name)
		require.NoError(t, err)

		serial, err := wideEngine(t, s).Evaluate(in)
		require.NoError(t, err)
		for _, workers := range []int{2, 3, 8, 64} {
			got, err := wideEngine(t, WithWorkers(s, workers)).Evaluate(in)
			require.NoError(t, err)
			assert.Equal(t, serial, got, "%s with %d workers", name, workers)
		}
	}
}

func TestForEachChunk_CoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100} {
		for _, w := range []int{0, 1, 3, 200} {
			seen := make([]int, n)
			forEachChunk(n, w, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					seen[i]++
				}
			})
			for i, c := range seen {
				assert.Equal(t, 1, c, "n=%d workers=%d index=%d", n, w, i)
			}
		}
	}
}

func TestVariable_Terms(t *testing.T) {
	a := mustMF(t, ShapeUp, "a", 0, 1)
	b := mustMF(t, ShapeDown, "b", 0, 1)
	v := mustVar(t, "v", -5, 5, b, a)
	assert.Equal(t, "v", v.Name())
	assert.Equal(t, 10, v.Domain().Len())
	assert.Equal(t, []Membership{b, a}, v.Terms())
	got, ok := v.Term("a")
	assert.True(t, ok)
	assert.Equal(t, a, got)
	_, ok = v.Term("c")
	assert.False(t, ok)

	_, err := NewVariable("dup", 0, 1, a, a)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewVariable("inverted", 5, 1)
	assert.ErrorIs(t, err, ErrConfiguration)
}
