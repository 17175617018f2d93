// Package chromosome implements component C3: fetching one chromosome's
// metadata and ordered gene/family lists.
package chromosome

import (
	"context"
	"fmt"

	"github.com/legumeinfo/gcv/internal/store"
)

// Chromosome is the result of a Get call: a chromosome's metadata plus its
// ordered gene and family lists, which have equal length and whose i-th
// entries correspond.
type Chromosome struct {
	Name     string
	Length   int64
	Genus    string
	Species  string
	Genes    []string
	Families []string
}

// Service implements C3 against a store.Store.
type Service struct {
	store *store.Store
}

// New returns a C3 service backed by s.
func New(s *store.Store) *Service {
	return &Service{store: s}
}

// Get loads a chromosome record and its parallel gene/family sequences.
// Returns a KindNotFound error if the chromosome does not exist.
func (svc *Service) Get(ctx context.Context, name string) (*Chromosome, error) {
	rec, err := svc.store.GetChromosome(ctx, name)
	if err != nil {
		return nil, err
	}

	genes, families, err := svc.store.ChromosomeGenes(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("chromosome.Get %q: %w", name, err)
	}

	return &Chromosome{
		Name:     rec.Name,
		Length:   rec.Length,
		Genus:    rec.Genus,
		Species:  rec.Species,
		Genes:    genes,
		Families: families,
	}, nil
}
