// Package macrofanout implements component C10: selecting which
// chromosomes are worth a pairwise macro-synteny comparison against a
// query family string, then running those comparisons concurrently and
// assembling the surviving results.
package macrofanout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/legumeinfo/gcv/internal/chromosome"
	"github.com/legumeinfo/gcv/internal/macroblocks"
	"github.com/legumeinfo/gcv/internal/store"
	"github.com/legumeinfo/gcv/internal/synteny"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options configures one Search call. Matched and Intermediate are the
// integer thresholds the macro-block service expects; they are also fed,
// converted to synteny.Threshold, into the candidate gap walk reused
// verbatim from micro-synteny search.
type Options struct {
	Matched      int
	Intermediate int
	Mask         int
	Metrics      []string
	MinGenes     int
	MinLength    int64
	// Targets restricts candidate selection to an explicit chromosome
	// list; nil searches every chromosome with a matching family.
	Targets []string
	// Concurrency bounds how many C9 invocations run at once. 0 means a
	// reasonable default (8).
	Concurrency int64
}

const defaultConcurrency = 8

// Result is one surviving target's enriched block set.
type Result struct {
	Chromosome string
	Genus      string
	Species    string
	Blocks     []macroblocks.Block
}

// Service implements C10 against a store.Store.
type Service struct {
	store  *store.Store
	blocks *macroblocks.Service
	chrom  *chromosome.Service
	log    *zap.Logger
}

// New returns a C10 service backed by s. A nil logger disables logging.
func New(s *store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  s,
		blocks: macroblocks.New(s),
		chrom:  chromosome.New(s),
		log:    log,
	}
}

// Search selects candidate chromosomes, invokes C9 against each
// concurrently, and returns the enriched, surviving results. Per-target
// failures are logged and the target is dropped rather than failing the
// whole call.
func (svc *Service) Search(ctx context.Context, query []string, opts Options) ([]Result, error) {
	if opts.Matched < 1 {
		return nil, apperr.InvalidArgument("macrofanout.Search", fmt.Errorf("matched must be >= 1"))
	}
	if opts.Intermediate < 1 {
		return nil, apperr.InvalidArgument("macrofanout.Search", fmt.Errorf("intermediate must be >= 1"))
	}

	reqID := uuid.New().String()
	log := svc.log.With(zap.String("request_id", reqID))

	candidates, err := svc.selectCandidates(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("macrofanout.Search: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	sem := semaphore.NewWeighted(concurrency)

	results := make([]*Result, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, chromName := range candidates {
		i, chromName := i, chromName
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			blocks, err := svc.blocks.Compute(gctx, chromName, query, macroblocks.Options{
				Matched:      opts.Matched,
				Intermediate: opts.Intermediate,
				Mask:         opts.Mask,
				Metrics:      opts.Metrics,
				MinGenes:     opts.MinGenes,
				MinLength:    opts.MinLength,
			})
			if err != nil {
				log.Warn("macrofanout: pairwise invocation failed, dropping target",
					zap.String("chromosome", chromName), zap.Error(err))
				return nil
			}
			if len(blocks) == 0 {
				return nil
			}

			rec, err := svc.chrom.Get(gctx, chromName)
			if err != nil {
				log.Warn("macrofanout: enrichment lookup failed, dropping target",
					zap.String("chromosome", chromName), zap.Error(err))
				return nil
			}

			results[i] = &Result{
				Chromosome: chromName,
				Genus:      rec.Genus,
				Species:    rec.Species,
				Blocks:     blocks,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("macrofanout.Search: %w", err)
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// selectCandidates bins shared-family gene positions by chromosome,
// discards chromosomes with fewer matches than Matched outright, and runs
// the same greedy gap walk as micro-synteny search on the
// rest, keeping chromosomes whose walk yields at least one block.
func (svc *Service) selectCandidates(ctx context.Context, query []string, opts Options) ([]string, error) {
	families := synteny.DistinctFamilies(query)

	var hits []synteny.ChromIndex
	for _, f := range families {
		var fhits []store.FamilyHit
		var err error
		if len(opts.Targets) > 0 {
			fhits, err = svc.store.GenesByFamilyIn(ctx, f, opts.Targets)
		} else {
			fhits, err = svc.store.GenesByFamily(ctx, f)
		}
		if err != nil {
			return nil, err
		}
		for _, h := range fhits {
			hits = append(hits, synteny.ChromIndex{Chromosome: h.Chromosome, Index: h.Index})
		}
	}

	binned := synteny.BinByChromosome(hits)
	n := len(query)
	matched := synteny.Threshold(float64(opts.Matched))
	intermediate := synteny.Threshold(float64(opts.Intermediate))

	var candidates []string
	for chrom, indices := range binned {
		if len(indices) < opts.Matched {
			continue
		}
		if blocks := synteny.GapWalk(indices, n, matched, intermediate); len(blocks) > 0 {
			candidates = append(candidates, chrom)
		}
	}
	return candidates, nil
}
