package macroblocks

import "github.com/legumeinfo/gcv/internal/macroblocks/metric"

// Block is one assembled macro-synteny block between a query gene-family
// sequence and a target chromosome.
type Block struct {
	Orientation byte // '+' or '-'
	QueryStart  int
	QueryStop   int
	Fmin        int64
	Fmax        int64
	Metrics     map[string]float64
}

// assembleBlock turns one traceback endpoint pair into a Block: it
// derives orientation from the relative order of the begin/end query
// indices, the target span's physical bounds from fmin/fmax, and the
// similarity metrics over the query/target family substrings with masked
// families stripped and, for inverted blocks, the target substring
// reversed so aligned positions correspond.
func assembleBlock(
	pairs []Pair,
	ep blockEndpoint,
	targetFamilies, queryFamilies []string,
	targetFmins, targetFmaxs []int64,
	masked map[string]bool,
	metrics map[string]metric.Func,
) (Block, error) {
	begin := pairs[ep.Begin]
	end := pairs[ep.End]

	orientation := byte('+')
	queryStart, queryStop := begin.Q, end.Q
	if begin.Q > end.Q {
		orientation = '-'
		queryStart, queryStop = end.Q, begin.Q
	}

	tStart, tStop := begin.T, end.T

	fmin := targetFmins[tStart]
	if targetFmaxs[tStart] < fmin {
		fmin = targetFmaxs[tStart]
	}
	fmax := targetFmaxs[tStop]
	if targetFmins[tStop] > fmax {
		fmax = targetFmins[tStop]
	}

	querySlice := stripMasked(queryFamilies[queryStart:queryStop+1], masked)
	targetSlice := stripMasked(targetFamilies[tStart:tStop+1], masked)
	if orientation == '-' {
		targetSlice = reverseStrings(targetSlice)
	}

	values := make(map[string]float64, len(metrics))
	for name, fn := range metrics {
		v, err := fn(querySlice, targetSlice)
		if err != nil {
			return Block{}, err
		}
		values[name] = v
	}

	return Block{
		Orientation: orientation,
		QueryStart:  queryStart,
		QueryStop:   queryStop,
		Fmin:        fmin,
		Fmax:        fmax,
		Metrics:     values,
	}, nil
}

func stripMasked(families []string, masked map[string]bool) []string {
	out := make([]string, 0, len(families))
	for _, f := range families {
		if f == "" || masked[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func reverseStrings(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
