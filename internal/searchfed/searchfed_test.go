package searchfed

import (
	"context"
	"testing"

	"github.com/legumeinfo/gcv/internal/chromsearch"
	"github.com/legumeinfo/gcv/internal/genesearch"
	"github.com/legumeinfo/gcv/internal/region"
	"github.com/legumeinfo/gcv/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	svc := New(genesearch.New(s), chromsearch.New(s), region.New(s), nil)
	return svc, s
}

func TestSearch_BareTokenFansOutToGenesAndChromosomes(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.PutGene(ctx, store.GeneRecord{Name: "abc1", Chromosome: "chr1"}))
	require.NoError(t, s.PutChromosome(ctx, store.ChromosomeRecord{Name: "abc2", Length: 100}))

	result, err := svc.Search(ctx, "abc")
	require.NoError(t, err)
	assert.Contains(t, result.Genes, "abc1")
	require.Len(t, result.Regions, 1)
	assert.Equal(t, "abc2", result.Regions[0].Chromosome)
	assert.Equal(t, int64(0), result.Regions[0].Start)
}

func TestSearch_RegionShape(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.PutChromosome(ctx, store.ChromosomeRecord{Name: "chr1", Length: 1000}))
	require.NoError(t, s.PutChromosomeGenes(ctx, "chr1", []store.GeneSeqEntry{
		{Gene: "g1", Family: "A", Fmin: 0, Fmax: 10},
	}))

	result, err := svc.Search(ctx, "chr1:10-20")
	require.NoError(t, err)
	require.Len(t, result.Regions, 1)
	assert.Equal(t, Region{Chromosome: "chr1", Start: 10, Stop: 20}, result.Regions[0])
	assert.Empty(t, result.Genes)

	result, err = svc.Search(ctx, "chr1:10..20")
	require.NoError(t, err)
	require.Len(t, result.Regions, 1)
}

func TestSearch_RegionOnMissingChromosomeIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	result, err := svc.Search(context.Background(), "ghost:1-2")
	require.NoError(t, err)
	assert.Empty(t, result.Genes)
	assert.Empty(t, result.Regions)
}

func TestSearch_MalformedRegionIsInvalidArgument(t *testing.T) {
	svc, _ := newTestService(t)
	// start > stop matches the region shape but is not a valid region; it
	// is rejected as invalid-argument rather than searched as a bare token.
	_, err := svc.Search(context.Background(), "chr1:20-10")
	require.Error(t, err)
}

func TestSearch_EmptyQueryIsInvalidArgument(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Search(context.Background(), "")
	require.Error(t, err)
}
