// Package region implements component C5: given a chromosome and an
// interval, return the middle overlapping gene and the total overlap
// count.
package region

import (
	"context"
	"fmt"
	"sort"

	"github.com/legumeinfo/gcv/internal/store"
)

// Region is the result of a Get call.
type Region struct {
	Gene      string
	Neighbors int
}

// Service implements C5 against a store.Store.
type Service struct {
	store *store.Store
}

// New returns a C5 service backed by s.
func New(s *store.Store) *Service {
	return &Service{store: s}
}

// Get finds the middle gene overlapping [start, stop) on chromosome and
// the total count of overlapping genes. Returns a KindNotFound error if
// the chromosome does not exist.
func (svc *Service) Get(ctx context.Context, chromosome string, start, stop int64) (*Region, error) {
	if _, err := svc.store.GetChromosome(ctx, chromosome); err != nil {
		return nil, err
	}

	fmins, fmaxs, err := svc.store.ChromosomeFminsFmaxs(ctx, chromosome)
	if err != nil {
		return nil, fmt.Errorf("region.Get %q: %w", chromosome, err)
	}
	genes, _, err := svc.store.ChromosomeGenes(ctx, chromosome)
	if err != nil {
		return nil, fmt.Errorf("region.Get %q: %w", chromosome, err)
	}

	n := len(fmins)

	// i = least index with fmins[i] >= start.
	i := sort.Search(n, func(k int) bool { return fmins[k] >= start })
	// j = least index with fmaxs[j] > stop.
	j := sort.Search(n, func(k int) bool { return fmaxs[k] > stop })

	neighbors := j - i
	center := (i + j) / 2

	var gene string
	if n > 0 {
		if center >= n {
			center = n - 1
		}
		if center < 0 {
			center = 0
		}
		gene = genes[center]
	}

	return &Region{Gene: gene, Neighbors: neighbors}, nil
}
