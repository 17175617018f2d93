package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["gff"])
	assert.True(t, names["chado"])
}
