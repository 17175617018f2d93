// Package microsynteny implements component C8: finding colinear gene
// runs across every indexed chromosome for a given family-string query.
package microsynteny

import (
	"context"
	"fmt"

	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/legumeinfo/gcv/internal/store"
	"github.com/legumeinfo/gcv/internal/synteny"
)

// Track is one emitted colinear gene run: a chromosome slice whose genes
// and families correspond index-for-index.
type Track struct {
	Name     string
	Genus    string
	Species  string
	Genes    []string
	Families []string
}

// Service implements C8 against a store.Store.
type Service struct {
	store *store.Store
}

// New returns a C8 service backed by s.
func New(s *store.Store) *Service {
	return &Service{store: s}
}

// Search enumerates colinear gene-family blocks matching query across
// every chromosome. Output ordering is unspecified.
func (svc *Service) Search(ctx context.Context, query []string, matched, intermediate synteny.Threshold) ([]Track, error) {
	if len(query) == 0 {
		return nil, apperr.InvalidArgument("microsynteny.Search", fmt.Errorf("query must be non-empty"))
	}
	if matched <= 0 || intermediate <= 0 {
		return nil, apperr.InvalidArgument("microsynteny.Search", fmt.Errorf("matched and intermediate must be positive"))
	}

	families := synteny.DistinctFamilies(query)

	var hits []synteny.ChromIndex
	for _, f := range families {
		fhits, err := svc.store.GenesByFamily(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("microsynteny.Search: %w", err)
		}
		for _, h := range fhits {
			hits = append(hits, synteny.ChromIndex{Chromosome: h.Chromosome, Index: h.Index})
		}
	}

	binned := synteny.BinByChromosome(hits)
	n := len(query)

	var tracks []Track
	for chrom, indices := range binned {
		blocks := synteny.GapWalk(indices, n, matched, intermediate)
		for _, b := range blocks {
			genes, fams, err := svc.store.ChromosomeGeneSlice(ctx, chrom, b.First, b.Last)
			if err != nil {
				return nil, fmt.Errorf("microsynteny.Search: %w", err)
			}
			rec, err := svc.store.GetChromosome(ctx, chrom)
			if err != nil {
				return nil, fmt.Errorf("microsynteny.Search: %w", err)
			}
			tracks = append(tracks, Track{
				Name:     chrom,
				Genus:    rec.Genus,
				Species:  rec.Species,
				Genes:    genes,
				Families: fams,
			})
		}
	}

	return tracks, nil
}
