package macroblocks

import "sort"

// blockEndpoint is one emitted block: Begin and End are the indices, in
// the pairs slice, of the chain's first and last pair.
type blockEndpoint struct {
	Begin int
	End   int
}

// traceback extracts non-overlapping chains from one chaining pass.
// Endpoints are visited score-descending; each walk
// from an endpoint back through its predecessor chain destructively
// severs the links it consumes, so an endpoint that only shares a suffix
// of an already-emitted longer chain cannot re-emit it: its own walk
// stops the moment it reaches a link some earlier, higher-scoring
// endpoint already cut.
func traceback(res chainResult, matched int) []blockEndpoint {
	n := len(res.score)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return res.score[order[i]] > res.score[order[j]]
	})

	pred := make([]int, n)
	copy(pred, res.pred)

	var blocks []blockEndpoint
	for _, e := range order {
		if res.score[e] < matched {
			break
		}
		// A pair with no original predecessor link is a singleton, never
		// part of any chain; it must never be emitted as a one-gene
		// block regardless of matched.
		if res.pred[e] == -1 {
			continue
		}

		b := e
		for pred[b] != -1 {
			next := pred[b]
			pred[b] = -1
			b = next
		}

		if res.score[e]-res.score[b]+1 >= matched {
			blocks = append(blocks, blockEndpoint{Begin: b, End: e})
		}
	}
	return blocks
}
