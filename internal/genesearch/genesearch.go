// Package genesearch implements component C6: fuzzy gene name search.
package genesearch

import (
	"context"

	"github.com/legumeinfo/gcv/internal/store"
)

// Service implements C6 against a store.Store.
type Service struct {
	store *store.Store
}

// New returns a C6 service backed by s.
func New(s *store.Store) *Service {
	return &Service{store: s}
}

// Search returns gene names matching the free-text query. An empty slice
// is a valid response, never an error.
func (svc *Service) Search(ctx context.Context, query string) ([]string, error) {
	return svc.store.SearchGeneNames(ctx, query)
}
