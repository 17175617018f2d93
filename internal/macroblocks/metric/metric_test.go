package metric

import (
	"testing"

	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein([]string{"A", "B", "C"}, []string{"A", "B", "C"}))
	assert.Equal(t, 1, Levenshtein([]string{"A", "B", "C"}, []string{"A", "X", "C"}))
	assert.Equal(t, 3, Levenshtein([]string{"A", "B", "C"}, nil))
}

func TestJaccard_PlainSet(t *testing.T) {
	d := Jaccard([]string{"A", "B", "C"}, []string{"B", "C", "D"}, 1, false, false)
	assert.InDelta(t, 1-2.0/4.0, d, 1e-9)
}

func TestJaccard_Reversals(t *testing.T) {
	a := []string{"A", "B"}
	b := []string{"B", "A"}
	withRev := Jaccard(a, b, 2, true, false)
	withoutRev := Jaccard(a, b, 2, false, false)
	assert.Equal(t, 0.0, withRev)
	assert.Equal(t, 1.0, withoutRev)
}

func TestJaccard_Multiset(t *testing.T) {
	a := []string{"A", "A", "B"}
	b := []string{"A", "B", "B"}
	d := Jaccard(a, b, 1, false, true)
	// multiset intersection {A:1,B:1}=2, union {A:2,B:2}=4
	assert.InDelta(t, 1-2.0/4.0, d, 1e-9)
}

func TestJaccard_ShorterThanNReturnsOne(t *testing.T) {
	a := []string{"A", "B"}
	b := []string{"A"}
	assert.Equal(t, 1.0, Jaccard(a, b, 3, false, false))
	assert.Equal(t, 1.0, Jaccard(a, b, 3, false, true))
}

func TestParse_Levenshtein(t *testing.T) {
	name, fn, err := Parse("levenshtein")
	require.NoError(t, err)
	assert.Equal(t, "levenshtein", name)
	v, err := fn([]string{"A"}, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestParse_JaccardWithArgs(t *testing.T) {
	_, fn, err := Parse("jaccard:2:true:false")
	require.NoError(t, err)
	v, err := fn([]string{"A", "B"}, []string{"B", "A"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestParse_UnknownMetric(t *testing.T) {
	_, _, err := Parse("nonexistent")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}
