// Package loader implements component C2: bulk ingestion of chromosome
// and gene data, from either a GFF file pair or a Chado database, into
// the store.
package loader

import (
	"context"
	"fmt"

	"github.com/legumeinfo/gcv/internal/apperr"
	"github.com/legumeinfo/gcv/internal/store"
)

// LoadType controls collision policy against preexisting chromosomes for
// the organism being loaded.
type LoadType string

const (
	LoadNew    LoadType = "new"
	LoadReload LoadType = "reload"
	LoadAppend LoadType = "append"
)

const defaultSize = 1000

func (lt LoadType) valid() bool {
	return lt == LoadNew || lt == LoadReload || lt == LoadAppend
}

// DefaultSequenceTypes are the GFF feature types recognized as
// chromosome-like sequences when no explicit filter is given.
var DefaultSequenceTypes = []string{"chromosome", "supercontig", "chloroplast", "mitochondrion"}

// Options configures one load.
type Options struct {
	LoadType      LoadType
	ChunkSize     int
	SequenceTypes []string
	NoSave        bool
	Genus         string
	Species       string
	Strain        string
	// UseUniquename prefers the GFF "ID" attribute over "Name" for gene
	// and chromosome display names.
	UseUniquename bool
}

func (o Options) sequenceTypes() []string {
	if len(o.SequenceTypes) == 0 {
		return DefaultSequenceTypes
	}
	return o.SequenceTypes
}

func (o Options) chunkSize() int {
	if o.ChunkSize <= 0 {
		return defaultSize
	}
	return o.ChunkSize
}

// Report summarizes one load: how much landed, and how much was
// tolerated-but-dropped.
type Report struct {
	Chromosomes          int
	Genes                int
	SkippedGenes         int
	SkippedFamilyEntries int
}

// Loader writes parsed chromosome/gene data into a store.Store.
type Loader struct {
	store *store.Store
}

// New returns a loader backed by s.
func New(s *store.Store) *Loader {
	return &Loader{store: s}
}

func (l *Loader) prepare(ctx context.Context, opts Options) error {
	if !opts.LoadType.valid() {
		return apperr.InvalidArgument("loader.prepare", fmt.Errorf("unknown load type %q", opts.LoadType))
	}
	if opts.Genus == "" || opts.Species == "" {
		return apperr.InvalidArgument("loader.prepare", fmt.Errorf("genus and species are required"))
	}

	if err := l.store.CheckCompatible(ctx, store.CompatibleSchemaVersions); err != nil {
		return err
	}

	if opts.LoadType == LoadReload {
		if err := l.store.DeleteOrganism(ctx, opts.Genus, opts.Species); err != nil {
			return fmt.Errorf("loader.prepare: reload delete: %w", err)
		}
	}
	return nil
}

// checkNewCollision enforces LoadNew's collision policy: none of names may
// already exist in the store. Called once the incoming chromosome names
// are known, after prepare and before any writes.
func (l *Loader) checkNewCollision(ctx context.Context, opts Options, names []string) error {
	if opts.LoadType != LoadNew {
		return nil
	}
	for _, name := range names {
		exists, err := l.store.ChromosomeExists(ctx, name)
		if err != nil {
			return fmt.Errorf("loader.checkNewCollision: %w", err)
		}
		if exists {
			return apperr.InvalidArgument("loader.checkNewCollision",
				fmt.Errorf("chromosome %q already exists; use --load-type reload or append", name))
		}
	}
	return nil
}

func (l *Loader) finish(ctx context.Context, opts Options) error {
	if opts.NoSave {
		return nil
	}
	if err := l.store.WriteVersion(ctx, store.SchemaVersion, store.CompatibleSchemaVersions); err != nil {
		return fmt.Errorf("loader.finish: %w", err)
	}
	return l.store.Checkpoint(ctx)
}
