package region

import (
	"context"
	"testing"

	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/legumeinfo/gcv/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.PutChromosome(ctx, store.ChromosomeRecord{Name: "chr1", Length: 1000, Genus: "G", Species: "s"}))
	require.NoError(t, s.PutChromosomeGenes(ctx, "chr1", []store.GeneSeqEntry{
		{Gene: "g0", Family: "A", Fmin: 0, Fmax: 10},
		{Gene: "g1", Family: "A", Fmin: 20, Fmax: 30},
		{Gene: "g2", Family: "A", Fmin: 40, Fmax: 50},
		{Gene: "g3", Family: "A", Fmin: 60, Fmax: 70},
	}))
}

func TestGet(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()
	seed(t, s)

	svc := New(s)
	r, err := svc.Get(context.Background(), "chr1", 15, 55)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Neighbors)
	assert.Equal(t, "g2", r.Gene)
}

func TestGet_NotFound(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	_, err = New(s).Get(context.Background(), "ghost", 0, 10)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
