package main

import (
	"fmt"

	"github.com/legumeinfo/gcv/internal/loader"
)

// printReport prints the loader's summary, matching
// gff_to_redisearch.py/chado_to_redisearch.py's final loaded-vs-skipped
// counts.
func printReport(r loader.Report) {
	fmt.Printf("chromosomes loaded: %d\n", r.Chromosomes)
	fmt.Printf("genes loaded: %d\n", r.Genes)
	if r.SkippedGenes > 0 {
		fmt.Printf("genes skipped: %d\n", r.SkippedGenes)
	}
	if r.SkippedFamilyEntries > 0 {
		fmt.Printf("family-map entries skipped (unknown gene): %d\n", r.SkippedFamilyEntries)
	}
}
