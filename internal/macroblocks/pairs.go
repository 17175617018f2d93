package macroblocks

import "math"

// Pair is a single (target, query) anchor: the family at target index T
// equals the family at query index Q.
type Pair struct {
	T int
	Q int
}

// unlimited stands in for an unset mask.
const unlimited = math.MaxInt32

func effectiveMask(mask int) int {
	if mask <= 0 {
		return unlimited
	}
	return mask
}

// generatePairs builds the ordered anchor list between target and query
// family sequences:
//   - queryFamilyIndices: family -> query positions, dropping any family
//     that occurs more than mask times in the query.
//   - for each target position whose family occurs at most mask times in
//     the target and survives the query-side drop, emit one pair per
//     matching query position.
//
// The result is ordered lexicographically by (T, Q) by construction: the
// outer loop walks target positions ascending, and query positions for a
// given family are collected ascending.
// generatePairs also reports the set of families it masked out, so block
// assembly can strip those same families from the substrings it feeds to
// similarity metrics.
func generatePairs(target, query []string, mask int) (pairs []Pair, masked map[string]bool) {
	m := effectiveMask(mask)
	masked = map[string]bool{}

	queryFamilyIndices := map[string][]int{}
	for i, f := range query {
		if f == "" {
			continue
		}
		queryFamilyIndices[f] = append(queryFamilyIndices[f], i)
	}
	for f, idxs := range queryFamilyIndices {
		if len(idxs) > m {
			delete(queryFamilyIndices, f)
			masked[f] = true
		}
	}

	targetCounts := map[string]int{}
	for _, f := range target {
		if f == "" {
			continue
		}
		targetCounts[f]++
	}
	for f, c := range targetCounts {
		if c > m {
			masked[f] = true
		}
	}

	for i, f := range target {
		if f == "" {
			continue
		}
		if targetCounts[f] > m {
			continue
		}
		qIdxs, ok := queryFamilyIndices[f]
		if !ok {
			continue
		}
		for _, q := range qIdxs {
			pairs = append(pairs, Pair{T: i, Q: q})
		}
	}
	return pairs, masked
}
