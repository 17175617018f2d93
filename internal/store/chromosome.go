package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/legumeinfo/gcv/internal/apperr"
)

// ChromosomeRecord is the `chromosome:<name>` hash record. Strain is
// carried as its own nullable tag column rather than embedded in Species.
type ChromosomeRecord struct {
	Name    string
	Length  int64
	Genus   string
	Species string
	Strain  string
}

// GeneSeqEntry is one position of the four parallel `:genes`, `:families`,
// `:fmins`, `:fmaxs` sequences, folded here into a single
// row of the chromosome_genes table.
type GeneSeqEntry struct {
	Gene   string
	Family string
	Fmin   int64
	Fmax   int64
}

// PutChromosome writes (or overwrites) a chromosome hash record.
func (s *Store) PutChromosome(ctx context.Context, rec ChromosomeRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chromosomes (name, length, genus, species, strain)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			length = excluded.length, genus = excluded.genus,
			species = excluded.species, strain = excluded.strain
	`, rec.Name, rec.Length, rec.Genus, rec.Species, nullString(rec.Strain))
	if err != nil {
		return fmt.Errorf("put chromosome %q: %w", rec.Name, err)
	}
	return nil
}

// GetChromosome loads a chromosome's hash record. Returns a KindNotFound
// apperr.Error if absent.
func (s *Store) GetChromosome(ctx context.Context, name string) (*ChromosomeRecord, error) {
	rec := &ChromosomeRecord{Name: name}
	var strain sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT length, genus, species, strain FROM chromosomes WHERE name = ?
	`, name).Scan(&rec.Length, &rec.Genus, &rec.Species, &strain)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("store.GetChromosome", fmt.Errorf("chromosome %q", name))
	}
	if err != nil {
		return nil, fmt.Errorf("get chromosome %q: %w", name, err)
	}
	rec.Strain = strain.String
	return rec, nil
}

// DeleteChromosome removes a chromosome's hash record and its parallel
// sequences. Used by the loader's reload policy.
func (s *Store) DeleteChromosome(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete chromosome %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chromosome_genes WHERE chromosome = ?`, name); err != nil {
		return fmt.Errorf("delete chromosome_genes for %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM genes WHERE chromosome = ?`, name); err != nil {
		return fmt.Errorf("delete genes for %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chromosomes WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete chromosome %q: %w", name, err)
	}
	return tx.Commit()
}

// DeleteOrganism removes every chromosome (and its genes) belonging to
// (genus, species), for use when an organism's data is explicitly reloaded.
func (s *Store) DeleteOrganism(ctx context.Context, genus, species string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM chromosomes WHERE genus = ? AND species = ?`, genus, species)
	if err != nil {
		return fmt.Errorf("list organism chromosomes: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("scan chromosome name: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range names {
		if err := s.DeleteChromosome(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// ChromosomeExists reports whether a chromosome record is present.
func (s *Store) ChromosomeExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM chromosomes WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check chromosome %q: %w", name, err)
	}
	return exists, nil
}

// PutChromosomeGenes writes the four parallel sequences for a chromosome
// in one batch, in order. Callers must pass entries already sorted by
// fmin with Gene/Family/Fmin/Fmax populated; the row index in entries
// becomes the gene's `index`.
func (s *Store) PutChromosomeGenes(ctx context.Context, chromosome string, entries []GeneSeqEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put chromosome genes for %q: %w", chromosome, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chromosome_genes (chromosome, idx, gene, family, fmin, fmax)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare chromosome_genes insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, chromosome, i, e.Gene, e.Family, e.Fmin, e.Fmax); err != nil {
			return fmt.Errorf("insert chromosome_genes[%d] for %q: %w", i, chromosome, err)
		}
	}

	return tx.Commit()
}

// ChromosomeGenes reads the full `:genes` and `:families` sequences for a
// chromosome, in index order.
func (s *Store) ChromosomeGenes(ctx context.Context, chromosome string) (genes, families []string, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT gene, family FROM chromosome_genes WHERE chromosome = ? ORDER BY idx
	`, chromosome)
	if err != nil {
		return nil, nil, fmt.Errorf("read chromosome genes for %q: %w", chromosome, err)
	}
	defer rows.Close()

	for rows.Next() {
		var gene, family string
		if err := rows.Scan(&gene, &family); err != nil {
			return nil, nil, fmt.Errorf("scan chromosome gene for %q: %w", chromosome, err)
		}
		genes = append(genes, gene)
		families = append(families, family)
	}
	return genes, families, rows.Err()
}

// ChromosomeFamilies reads only the `:families` sequence, in index order.
// It is the target family string used as input to block-matching.
func (s *Store) ChromosomeFamilies(ctx context.Context, chromosome string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT family FROM chromosome_genes WHERE chromosome = ? ORDER BY idx
	`, chromosome)
	if err != nil {
		return nil, fmt.Errorf("read chromosome families for %q: %w", chromosome, err)
	}
	defer rows.Close()

	var families []string
	for rows.Next() {
		var family string
		if err := rows.Scan(&family); err != nil {
			return nil, fmt.Errorf("scan chromosome family for %q: %w", chromosome, err)
		}
		families = append(families, family)
	}
	return families, rows.Err()
}

// ChromosomeFminsFmaxs reads the `:fmins` and `:fmaxs` sequences in index
// order.
func (s *Store) ChromosomeFminsFmaxs(ctx context.Context, chromosome string) (fmins, fmaxs []int64, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fmin, fmax FROM chromosome_genes WHERE chromosome = ? ORDER BY idx
	`, chromosome)
	if err != nil {
		return nil, nil, fmt.Errorf("read chromosome fmin/fmax for %q: %w", chromosome, err)
	}
	defer rows.Close()

	for rows.Next() {
		var fmin, fmax int64
		if err := rows.Scan(&fmin, &fmax); err != nil {
			return nil, nil, fmt.Errorf("scan chromosome fmin/fmax for %q: %w", chromosome, err)
		}
		fmins = append(fmins, fmin)
		fmaxs = append(fmaxs, fmax)
	}
	return fmins, fmaxs, rows.Err()
}

// ChromosomeGeneSlice reads `:genes` and `:families` over [first, last]
// (inclusive, 0-based), used by micro-synteny (C8) track assembly.
func (s *Store) ChromosomeGeneSlice(ctx context.Context, chromosome string, first, last int) (genes, families []string, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT gene, family FROM chromosome_genes
		WHERE chromosome = ? AND idx BETWEEN ? AND ?
		ORDER BY idx
	`, chromosome, first, last)
	if err != nil {
		return nil, nil, fmt.Errorf("read chromosome gene slice for %q: %w", chromosome, err)
	}
	defer rows.Close()

	for rows.Next() {
		var gene, family string
		if err := rows.Scan(&gene, &family); err != nil {
			return nil, nil, fmt.Errorf("scan chromosome gene slice for %q: %w", chromosome, err)
		}
		genes = append(genes, gene)
		families = append(families, family)
	}
	return genes, families, rows.Err()
}

// ChromosomeFminFmaxAt reads a single (fmin, fmax) pair at idx. C9 block
// assembly does not call it; it reads the whole sequences through
// ChromosomeFminsFmaxs.
func (s *Store) ChromosomeFminFmaxAt(ctx context.Context, chromosome string, idx int) (fmin, fmax int64, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT fmin, fmax FROM chromosome_genes WHERE chromosome = ? AND idx = ?
	`, chromosome, idx).Scan(&fmin, &fmax)
	if err != nil {
		return 0, 0, fmt.Errorf("read fmin/fmax for %q[%d]: %w", chromosome, idx, err)
	}
	return fmin, fmax, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
