// Package searchfed implements component C11: parsing one free-form
// query string into a typed shape and dispatching to the gene/chromosome
// name searches (C6/C4) or the region lookup (C5), with per-dispatch
// failure isolation.
package searchfed

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/legumeinfo/gcv/internal/chromsearch"
	"github.com/legumeinfo/gcv/internal/genesearch"
	"github.com/legumeinfo/gcv/internal/region"
	"go.uber.org/zap"
)

// regionPattern matches `chromosome:start-stop` or `chromosome:start..stop`.
var regionPattern = regexp.MustCompile(`^(.+):(\d+)(?:-|\.\.)(\d+)$`)

// Region is one resolved region shape in a Result. Start and Stop are
// zero when the region came from a bare-token chromosome-name match
// rather than an explicit `chromosome:start-stop` query: the whole
// chromosome is the implied region.
type Region struct {
	Chromosome string
	Start      int64
	Stop       int64
}

// Result is the federated search response; callers check which of Genes
// and Regions is non-empty.
type Result struct {
	Genes   []string
	Regions []Region
}

// Service implements C11 over C4/C5/C6.
type Service struct {
	genes   *genesearch.Service
	chroms  *chromsearch.Service
	regions *region.Service
	log     *zap.Logger
}

// New returns a C11 service composed from the given component services. A
// nil logger disables logging.
func New(genes *genesearch.Service, chroms *chromsearch.Service, regions *region.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{genes: genes, chroms: chroms, regions: regions, log: log}
}

// Search parses query and dispatches it. Parse failures are
// invalid-argument; failures in an individual dispatched lookup are
// logged and yield an empty slot rather than failing the whole call.
func (svc *Service) Search(ctx context.Context, query string) (*Result, error) {
	if query == "" {
		return nil, apperr.InvalidArgument("searchfed.Search", fmt.Errorf("query must be non-empty"))
	}

	if m := regionPattern.FindStringSubmatch(query); m != nil {
		chromosome := m[1]
		start, errStart := strconv.ParseInt(m[2], 10, 64)
		stop, errStop := strconv.ParseInt(m[3], 10, 64)
		if errStart != nil || errStop != nil || start > stop {
			return nil, apperr.InvalidArgument("searchfed.Search", fmt.Errorf("malformed region %q", query))
		}

		if _, err := svc.regions.Get(ctx, chromosome, start, stop); err != nil {
			if !apperr.Is(err, apperr.KindNotFound) {
				svc.log.Warn("searchfed: region lookup failed", zap.String("query", query), zap.Error(err))
			}
			return &Result{}, nil
		}
		return &Result{Regions: []Region{{Chromosome: chromosome, Start: start, Stop: stop}}}, nil
	}

	result := &Result{}

	genes, err := svc.genes.Search(ctx, query)
	if err != nil {
		svc.log.Warn("searchfed: gene search failed", zap.String("query", query), zap.Error(err))
	} else {
		result.Genes = genes
	}

	chroms, err := svc.chroms.Search(ctx, query)
	if err != nil {
		svc.log.Warn("searchfed: chromosome search failed", zap.String("query", query), zap.Error(err))
	} else {
		for _, c := range chroms {
			result.Regions = append(result.Regions, Region{Chromosome: c})
		}
	}

	return result, nil
}
