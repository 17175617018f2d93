package macrofanout

import (
	"context"
	"testing"

	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/legumeinfo/gcv/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChrom(t *testing.T, s *store.Store, name string, families []string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.PutChromosome(ctx, store.ChromosomeRecord{Name: name, Length: int64(len(families) * 10), Genus: "G", Species: "sp"}))
	entries := make([]store.GeneSeqEntry, len(families))
	for i, f := range families {
		entries[i] = store.GeneSeqEntry{Gene: name + "_g" + string(rune('0'+i)), Family: f, Fmin: int64(i * 10), Fmax: int64(i*10 + 9)}
		require.NoError(t, s.PutGene(ctx, store.GeneRecord{
			Name: name + "_g" + string(rune('0'+i)), Chromosome: name, Family: f, Index: i, Fmin: int64(i * 10), Fmax: int64(i*10 + 9),
		}))
	}
	require.NoError(t, s.PutChromosomeGenes(ctx, name, entries))
}

func TestSearch_FindsCandidateAndInvokesPairwise(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	seedChrom(t, s, "hit", []string{"A", "B", "C", "D"})
	seedChrom(t, s, "miss", []string{"X", "Y", "Z"})

	svc := New(s, nil)
	results, err := svc.Search(context.Background(), []string{"A", "B", "C", "D"}, Options{
		Matched: 4, Intermediate: 5,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hit", results[0].Chromosome)
	assert.Len(t, results[0].Blocks, 1)
}

func TestSearch_NoCandidatesReturnsEmpty(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	seedChrom(t, s, "miss", []string{"X", "Y", "Z"})

	svc := New(s, nil)
	results, err := svc.Search(context.Background(), []string{"A", "B"}, Options{Matched: 2, Intermediate: 1})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_RestrictedToExplicitTargets(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	seedChrom(t, s, "hit1", []string{"A", "B", "C", "D"})
	seedChrom(t, s, "hit2", []string{"A", "B", "C", "D"})

	svc := New(s, nil)
	results, err := svc.Search(context.Background(), []string{"A", "B", "C", "D"}, Options{
		Matched: 4, Intermediate: 5, Targets: []string{"hit1"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hit1", results[0].Chromosome)
}

func TestSearch_InvalidMatchedFailsWholeCall(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	seedChrom(t, s, "hit", []string{"A", "B", "C", "D"})

	svc := New(s, nil)
	_, err = svc.Search(context.Background(), []string{"A", "B", "C", "D"}, Options{
		Matched: 0, Intermediate: 5,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestSearch_InvalidIntermediateFailsWholeCall(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	seedChrom(t, s, "hit", []string{"A", "B", "C", "D"})

	svc := New(s, nil)
	_, err = svc.Search(context.Background(), []string{"A", "B", "C", "D"}, Options{
		Matched: 4, Intermediate: 0,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}
