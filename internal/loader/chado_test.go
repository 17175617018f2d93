package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildChromosomeQuery_PlaceholderCount(t *testing.T) {
	q := buildChromosomeQuery([]string{"chromosome", "supercontig"})
	assert.Contains(t, q, "t.name IN (?, ?)")
}

func TestQuoteSQLString_EscapesQuotes(t *testing.T) {
	assert.Equal(t, `'host=db dbname=it''s'`, quoteSQLString(`host=db dbname=it's`))
}

func TestInArgs(t *testing.T) {
	args := inArgs([]string{"a", "b"})
	assert.Equal(t, []interface{}{"a", "b"}, args)
}
