package macroblocks

import (
	"context"
	"testing"

	"github.com/legumeinfo/gcv/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTarget(t *testing.T, s *store.Store, name string, families []string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.PutChromosome(ctx, store.ChromosomeRecord{Name: name, Length: int64(len(families) * 10), Genus: "G", Species: "s"}))
	entries := make([]store.GeneSeqEntry, len(families))
	for i, f := range families {
		entries[i] = store.GeneSeqEntry{Gene: name + "_g" + string(rune('0'+i)), Family: f, Fmin: int64(i * 10), Fmax: int64(i*10 + 9)}
	}
	require.NoError(t, s.PutChromosomeGenes(ctx, name, entries))
}

func TestCompute_Scenario1_ForwardExactMatch(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seedTarget(t, s, "T1", []string{"A", "B", "C", "D"})

	svc := New(s)
	blocks, err := svc.Compute(context.Background(), "T1", []string{"A", "B", "C", "D"}, Options{Matched: 4, Intermediate: 5})
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, byte('+'), blocks[0].Orientation)
	assert.Equal(t, 0, blocks[0].QueryStart)
	assert.Equal(t, 3, blocks[0].QueryStop)
}

func TestCompute_Scenario2_ReverseExactMatch(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seedTarget(t, s, "T2", []string{"D", "C", "B", "A"})

	svc := New(s)
	blocks, err := svc.Compute(context.Background(), "T2", []string{"A", "B", "C", "D"}, Options{Matched: 4, Intermediate: 5})
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, byte('-'), blocks[0].Orientation)
	assert.Equal(t, 0, blocks[0].QueryStart)
	assert.Equal(t, 3, blocks[0].QueryStop)
}

func TestCompute_Scenario3_ForwardWithTolerableGaps(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seedTarget(t, s, "T3", []string{"A", "X", "B", "X", "C", "X", "D"})

	svc := New(s)
	blocks, err := svc.Compute(context.Background(), "T3", []string{"A", "B", "C", "D"}, Options{Matched: 4, Intermediate: 2})
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 0, blocks[0].QueryStart)
	assert.Equal(t, 3, blocks[0].QueryStop)
}

func TestCompute_Scenario4_GapExceedsBound(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seedTarget(t, s, "T4", []string{"A", "X", "X", "X", "B", "C", "D"})

	svc := New(s)
	blocks, err := svc.Compute(context.Background(), "T4", []string{"A", "B", "C", "D"}, Options{Matched: 4, Intermediate: 2})
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestCompute_Scenario5_MaskingExcludesFamily(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seedTarget(t, s, "T5", []string{"A", "A", "B", "C"})

	svc := New(s)
	blocks, err := svc.Compute(context.Background(), "T5", []string{"A", "A", "B", "C"}, Options{Matched: 3, Intermediate: 2, Mask: 1})
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestCompute_MissingTargetIsEmptyNotError(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	svc := New(s)
	blocks, err := svc.Compute(context.Background(), "ghost", []string{"A"}, Options{Matched: 1, Intermediate: 1})
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestCompute_WithMetric(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seedTarget(t, s, "T6", []string{"A", "B", "C", "D"})

	svc := New(s)
	blocks, err := svc.Compute(context.Background(), "T6", []string{"A", "B", "C", "D"}, Options{
		Matched: 4, Intermediate: 5, Metrics: []string{"levenshtein"},
	})
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 0.0, blocks[0].Metrics["levenshtein"])
}

func TestCompute_UnknownMetricIsInvalidArgument(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seedTarget(t, s, "T7", []string{"A", "B"})

	svc := New(s)
	_, err = svc.Compute(context.Background(), "T7", []string{"A", "B"}, Options{
		Matched: 2, Intermediate: 2, Metrics: []string{"nonexistent"},
	})
	require.Error(t, err)
}
