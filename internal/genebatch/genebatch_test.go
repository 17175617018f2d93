package genebatch

import (
	"context"
	"testing"

	"github.com/legumeinfo/gcv/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.PutGene(ctx, store.GeneRecord{Name: "g1", Chromosome: "chr1", Family: "A", Fmin: 0, Fmax: 10, Strand: 1}))
	require.NoError(t, s.PutGene(ctx, store.GeneRecord{Name: "g2", Chromosome: "chr1", Family: "", Fmin: 20, Fmax: 30, Strand: -1}))

	svc := New(s)
	genes, err := svc.Get(ctx, []string{"g1", "g2", "ghost"})
	require.NoError(t, err)
	require.Len(t, genes, 2)

	byName := map[string]Gene{}
	for _, g := range genes {
		byName[g.Name] = g
	}
	assert.Equal(t, "A", byName["g1"].Family)
	assert.Equal(t, "", byName["g2"].Family)
}
