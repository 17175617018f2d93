// Package chromsearch implements component C4: fuzzy chromosome name
// search.
package chromsearch

import (
	"context"

	"github.com/legumeinfo/gcv/internal/store"
)

// Service implements C4 against a store.Store.
type Service struct {
	store *store.Store
}

// New returns a C4 service backed by s.
func New(s *store.Store) *Service {
	return &Service{store: s}
}

// Search returns chromosome names matching the free-text query. An empty
// slice is a valid response, never an error.
func (svc *Service) Search(ctx context.Context, query string) ([]string, error) {
	return svc.store.SearchChromosomeNames(ctx, query)
}
