package bbolt

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/corey/fuzzy/internal/ports"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

// makeTestDefinition creates a realistic fan-controller definition.
func makeTestDefinition(name string) *ports.Definition {
	return &ports.Definition{
		Name:     name,
		Strategy: "centroid",
		Workers:  4,
		Inputs: []ports.VariableSpec{
			{Name: "temp", Start: 0, End: 100, Terms: []ports.TermSpec{
				{Name: "cold", Shape: "down", Params: []float64{10, 40}},
				{Name: "warm", Shape: "triangle", Params: []float64{20, 50, 80}},
				{Name: "hot", Shape: "up", Params: []float64{60, 90}},
			}},
		},
		Outputs: []ports.VariableSpec{
			{Name: "fan", Start: 0, End: 10, Terms: []ports.TermSpec{
				{Name: "slow", Shape: "down", Params: []float64{0, 5}},
				{Name: "fast", Shape: "trapezoid", Params: []float64{4, 6, 9, 10}},
			}},
		},
		Rules: []string{
			"if temp is cold then fan is slow",
			"if temp is very hot then fan is fast",
		},
	}
}

func makeRecord(def string, i int) *ports.EvaluationRecord {
	return &ports.EvaluationRecord{
		ID:         fmt.Sprintf("rec-%d", i),
		Definition: def,
		Inputs:     map[string]float64{"temp": float64(i)},
		Output:     float64(i) / 10,
		At:         time.Unix(1700000000+int64(i), 0).UTC(),
	}
}

func TestStore_SaveLoadDefinition(t *testing.T) {
	store, _ := newTestStore(t)
	def := makeTestDefinition("hvac")

	require.NoError(t, store.SaveDefinition(def))
	got, err := store.LoadDefinition("hvac")
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(def, got); diff != "" {
		t.Errorf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)
	got, err := store.LoadDefinition("nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	recs, err := store.Evaluations("nope", 10)
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_SaveReplaces(t *testing.T) {
	store, _ := newTestStore(t)
	def := makeTestDefinition("hvac")
	require.NoError(t, store.SaveDefinition(def))

	def.Strategy = "mom"
	def.Rules = def.Rules[:1]
	require.NoError(t, store.SaveDefinition(def))

	got, err := store.LoadDefinition("hvac")
	require.NoError(t, err)
	assert.Equal(t, "mom", got.Strategy)
	assert.Len(t, got.Rules, 1)
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.SaveDefinition(nil))
	assert.Error(t, store.SaveDefinition(&ports.Definition{}))
	assert.Error(t, store.AppendEvaluation(nil))
	assert.Error(t, store.AppendEvaluation(&ports.EvaluationRecord{ID: "x"}))
}

func TestStore_ListDefinitions(t *testing.T) {
	store, _ := newTestStore(t)
	names, err := store.ListDefinitions()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, n := range []string{"pump", "hvac", "brake"} {
		require.NoError(t, store.SaveDefinition(makeTestDefinition(n)))
	}
	names, err = store.ListDefinitions()
	require.NoError(t, err)
	assert.Equal(t, []string{"brake", "hvac", "pump"}, names)
}

func TestStore_EvaluationsNewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, store.AppendEvaluation(makeRecord("hvac", i)))
	}
	require.NoError(t, store.AppendEvaluation(makeRecord("pump", 99)))

	all, err := store.Evaluations("hvac", 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "rec-5", all[0].ID)
	assert.Equal(t, "rec-1", all[4].ID)
	assert.Equal(t, map[string]float64{"temp": 5}, all[0].Inputs)
	assert.True(t, all[0].At.Equal(time.Unix(1700000005, 0)))

	top, err := store.Evaluations("hvac", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "rec-5", top[0].ID)
	assert.Equal(t, "rec-4", top[1].ID)
}

func TestStore_FailedEvaluationKeepsError(t *testing.T) {
	store, _ := newTestStore(t)
	rec := makeRecord("hvac", 1)
	rec.Error = "no rule fired: zero aggregate area over [0, 10)"
	require.NoError(t, store.AppendEvaluation(rec))

	got, err := store.Evaluations("hvac", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.Error, got[0].Error)
}

func TestStore_DeleteDefinition(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveDefinition(makeTestDefinition("hvac")))
	require.NoError(t, store.AppendEvaluation(makeRecord("hvac", 1)))

	require.NoError(t, store.DeleteDefinition("hvac"))
	got, err := store.LoadDefinition("hvac")
	require.NoError(t, err)
	assert.Nil(t, got)
	recs, err := store.Evaluations("hvac", 0)
	require.NoError(t, err)
	assert.Empty(t, recs)

	// Idempotent
	assert.NoError(t, store.DeleteDefinition("hvac"))
	assert.NoError(t, store.DeleteDefinition("never-existed"))
}

func TestStore_SurvivesReopen(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.SaveDefinition(makeTestDefinition("hvac")))
	require.NoError(t, store.AppendEvaluation(makeRecord("hvac", 1)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadDefinition("hvac")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Rules, 2)
	recs, err := reopened.Evaluations("hvac", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	store, _ := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.AppendEvaluation(makeRecord("hvac", i)))
		}(i)
	}
	wg.Wait()

	recs, err := store.Evaluations("hvac", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 20)
}

func TestSeqKey_Ordering(t *testing.T) {
	assert.Len(t, seqKey(1), 8)
	assert.Less(t, string(seqKey(255)), string(seqKey(256)))
	assert.Less(t, string(seqKey(1)), string(seqKey(1<<40)))
}

func TestStore_OpenTimeout_DoesNotHang(t *testing.T) {
	// A second open while the exclusive lock is held should time out in
	// about a second and mention the timeout, not hang.
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	defer store1.Close()

	start := time.Now()
	store2, err := NewStore(path)
	elapsed := time.Since(start)

	require.Error(t, err, "second open should fail with lock timeout")
	assert.Nil(t, store2)
	assert.Contains(t, err.Error(), "bbolt open:")
	assert.Contains(t, err.Error(), "timeout")
	assert.Less(t, elapsed, 3*time.Second)
}
