// Package genebatch implements component C7: fetching full gene records
// for a list of names.
package genebatch

import (
	"context"

	"github.com/legumeinfo/gcv/internal/store"
)

// Gene is one gene record returned from a batch fetch.
type Gene struct {
	Name       string
	Chromosome string
	Family     string
	Fmin       int64
	Fmax       int64
	Strand     int
}

// Service implements C7 against a store.Store.
type Service struct {
	store *store.Store
}

// New returns a C7 service backed by s.
func New(s *store.Store) *Service {
	return &Service{store: s}
}

// Get returns gene records for names. Missing names are omitted silently
//; family is the empty string when unassigned.
func (svc *Service) Get(ctx context.Context, names []string) ([]Gene, error) {
	recs, err := svc.store.GetGenes(ctx, names)
	if err != nil {
		return nil, err
	}

	genes := make([]Gene, len(recs))
	for i, r := range recs {
		genes[i] = Gene{
			Name:       r.Name,
			Chromosome: r.Chromosome,
			Family:     r.Family,
			Fmin:       r.Fmin,
			Fmax:       r.Fmax,
			Strand:     r.Strand,
		}
	}
	return genes, nil
}
