package synteny

import "sort"

// Block is a run of gene indices on one chromosome that stayed within the
// gap bound and met the matched-count threshold.
type Block struct {
	First int // chromosome index of the block's first matched gene
	Last  int // chromosome index of the block's last matched gene
}

// GapWalk greedily walks sorted, distinct chromosome indices and emits
// every maximal run whose successive gaps stay within intermediate and
// whose size meets matched, both evaluated against queryLen. indices must
// already be sorted ascending.
//
// This is the micro-synteny block walk, reused verbatim by macro
// fan-out candidate selection.
func GapWalk(indices []int, queryLen int, matched, intermediate Threshold) []Block {
	if len(indices) == 0 {
		return nil
	}

	var blocks []Block
	start := 0
	for i := 1; i <= len(indices); i++ {
		if i < len(indices) {
			gap := indices[i] - indices[i-1]
			if intermediate.GapOK(gap, queryLen) {
				continue
			}
		}

		size := i - start
		if matched.MatchedOK(size, queryLen) {
			blocks = append(blocks, Block{First: indices[start], Last: indices[i-1]})
		}
		start = i
	}
	return blocks
}

// BinByChromosome groups (chromosome, index) hits by chromosome and sorts
// each chromosome's indices ascending, ready for GapWalk.
func BinByChromosome(hits []ChromIndex) map[string][]int {
	byChrom := make(map[string][]int)
	for _, h := range hits {
		byChrom[h.Chromosome] = append(byChrom[h.Chromosome], h.Index)
	}
	for chrom := range byChrom {
		sort.Ints(byChrom[chrom])
	}
	return byChrom
}

// ChromIndex is a gene's (chromosome, index) position, the unit collected
// per matched family. It mirrors store.FamilyHit so this package doesn't
// need to import store just for a two-field struct.
type ChromIndex struct {
	Chromosome string
	Index      int
}
