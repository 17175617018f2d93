// Package macroblocks implements component C9: pairwise macro-synteny
// block detection between a query gene-family sequence and a target
// chromosome, via forward/reverse DAG chaining over family-identity
// anchors.
package macroblocks

import (
	"context"
	"fmt"

	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/legumeinfo/gcv/internal/macroblocks/metric"
	"github.com/legumeinfo/gcv/internal/store"
)

// Options configures one Compute call. Matched and Intermediate are
// integer thresholds.
type Options struct {
	// Matched is the minimum chain length (number of anchors) a block
	// must reach to be emitted.
	Matched int
	// Intermediate bounds the target-coordinate gap tolerated between
	// consecutive anchors in a chain.
	Intermediate int
	// Mask caps how many times a family may occur in either sequence
	// before it is dropped from anchor generation entirely. 0 means
	// unbounded.
	Mask int
	// Metrics lists metric specs (`name` or `name:arg1:arg2`) to compute
	// for every emitted block.
	Metrics []string
	// MinGenes is the minimum number of genes the target chromosome must
	// carry. 0 means no floor.
	MinGenes int
	// MinLength is the minimum physical length (bp) the target
	// chromosome must have. 0 means no floor.
	MinLength int64
}

// Service implements C9 against a store.Store.
type Service struct {
	store *store.Store
}

// New returns a C9 service backed by s.
func New(s *store.Store) *Service {
	return &Service{store: s}
}

// Compute finds macro-synteny blocks between query and the chromosome
// named target. Preconditions that are about the data rather than the
// request (missing target, too few genes, too short, too few candidate
// anchors) yield an empty, non-error result rather than failing the
// call, rather than being treated as an error.
func (svc *Service) Compute(ctx context.Context, target string, query []string, opts Options) ([]Block, error) {
	if opts.Matched < 1 {
		return nil, apperr.InvalidArgument("macroblocks.Compute", fmt.Errorf("matched must be >= 1"))
	}
	if opts.Intermediate < 1 {
		return nil, apperr.InvalidArgument("macroblocks.Compute", fmt.Errorf("intermediate must be >= 1"))
	}

	metrics := make(map[string]metric.Func, len(opts.Metrics))
	for _, spec := range opts.Metrics {
		name, fn, err := metric.Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("macroblocks.Compute: %w", err)
		}
		metrics[name] = fn
	}

	rec, err := svc.store.GetChromosome(ctx, target)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("macroblocks.Compute: %w", err)
	}
	if opts.MinLength > 0 && rec.Length < opts.MinLength {
		return nil, nil
	}

	targetFamilies, err := svc.store.ChromosomeFamilies(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("macroblocks.Compute: %w", err)
	}
	if opts.MinGenes > 0 && len(targetFamilies) < opts.MinGenes {
		return nil, nil
	}
	if len(query) < opts.Matched {
		return nil, nil
	}

	pairs, masked := generatePairs(targetFamilies, query, opts.Mask)
	if len(pairs) < opts.Matched {
		return nil, nil
	}

	targetFmins, targetFmaxs, err := svc.store.ChromosomeFminsFmaxs(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("macroblocks.Compute: %w", err)
	}

	var blocks []Block
	for _, res := range []chainResult{chainForward(pairs, opts.Intermediate), chainReverse(pairs, opts.Intermediate)} {
		for _, ep := range traceback(res, opts.Matched) {
			b, err := assembleBlock(pairs, ep, targetFamilies, query, targetFmins, targetFmaxs, masked, metrics)
			if err != nil {
				return nil, fmt.Errorf("macroblocks.Compute: %w", err)
			}
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}
