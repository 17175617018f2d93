package synteny

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapWalk_ExactMatch(t *testing.T) {
	// Query [A,B,C,D] vs indices [0,1,2,3], matched=4, intermediate=5.
	blocks := GapWalk([]int{0, 1, 2, 3}, 4, Threshold(4), Threshold(5))
	require.Len(t, blocks, 1)
	assert.Equal(t, Block{First: 0, Last: 3}, blocks[0])
}

func TestGapWalk_GapWithinBound(t *testing.T) {
	// target [A,X,B,X,C,X,D] -> matched family indices [0,2,4,6], intermediate=3 (gap <= 2).
	blocks := GapWalk([]int{0, 2, 4, 6}, 4, Threshold(4), Threshold(3))
	require.Len(t, blocks, 1)
	assert.Equal(t, Block{First: 0, Last: 6}, blocks[0])
}

func TestGapWalk_GapExceedsBound(t *testing.T) {
	// target [A,X,X,X,B,C,D] -> matched indices [0,4,5,6], intermediate=2 (gap <= 1): gap 4 breaks the run.
	blocks := GapWalk([]int{0, 4, 5, 6}, 4, Threshold(4), Threshold(2))
	assert.Empty(t, blocks)
}

func TestGapWalk_FractionalBoundary(t *testing.T) {
	// Query [A,B,C] (len 3) vs corpus chromosome X [A,B,Z,C,D]; matched
	// family indices on X are [0,1,3] (A,B,C). matched=0.67 (fractional),
	// intermediate=1 means gap <= 0 (not fractional); gap 1-0=1 and
	// 3-1=2 both exceed 0, so no block qualifies.
	blocks := GapWalk([]int{0, 1, 3}, 3, Threshold(0.67), Threshold(1))
	assert.Empty(t, blocks)
}

func TestGapWalk_EmptyInput(t *testing.T) {
	assert.Empty(t, GapWalk(nil, 4, Threshold(1), Threshold(1)))
}

func TestBinByChromosome(t *testing.T) {
	hits := []ChromIndex{
		{Chromosome: "1", Index: 5},
		{Chromosome: "2", Index: 1},
		{Chromosome: "1", Index: 2},
	}
	binned := BinByChromosome(hits)
	assert.Equal(t, []int{2, 5}, binned["1"])
	assert.Equal(t, []int{1}, binned["2"])
}

func TestDistinctFamilies(t *testing.T) {
	out := DistinctFamilies([]string{"A", "", "B", "A", "C"})
	assert.Equal(t, []string{"A", "B", "C"}, out)
}
