package chromsearch

import (
	"context"
	"testing"

	"github.com/legumeinfo/gcv/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.PutChromosome(ctx, store.ChromosomeRecord{Name: "Gm01", Length: 1, Genus: "Glycine", Species: "max"}))
	require.NoError(t, s.PutChromosome(ctx, store.ChromosomeRecord{Name: "Gm02", Length: 1, Genus: "Glycine", Species: "max"}))

	svc := New(s)
	names, err := svc.Search(ctx, "Gm01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gm01"}, names)

	names, err = svc.Search(ctx, "nothing,here!")
	require.NoError(t, err)
	assert.Empty(t, names)
}
