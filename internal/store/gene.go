package store

import (
	"context"
	"fmt"
	"strings"
)

// GeneRecord is the `gene:<name>` hash record.
type GeneRecord struct {
	Name       string
	Chromosome string
	Fmin       int64
	Fmax       int64
	Strand     int
	Family     string
	Index      int
}

// PutGene writes (or overwrites) a gene hash record.
func (s *Store) PutGene(ctx context.Context, rec GeneRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO genes (name, chromosome, fmin, fmax, strand, family, idx)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			chromosome = excluded.chromosome, fmin = excluded.fmin, fmax = excluded.fmax,
			strand = excluded.strand, family = excluded.family, idx = excluded.idx
	`, rec.Name, rec.Chromosome, rec.Fmin, rec.Fmax, rec.Strand, rec.Family, rec.Index)
	if err != nil {
		return fmt.Errorf("put gene %q: %w", rec.Name, err)
	}
	return nil
}

// GetGenes returns the gene records for names, in no particular order.
// Missing names are silently omitted.
func (s *Store) GetGenes(ctx context.Context, names []string) ([]GeneRecord, error) {
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(names))
	args := make([]interface{}, len(names))
	for i, n := range names {
		placeholders[i] = "?"
		args[i] = n
	}

	query := fmt.Sprintf(`
		SELECT name, chromosome, fmin, fmax, strand, family, idx
		FROM genes WHERE name IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get genes: %w", err)
	}
	defer rows.Close()

	var out []GeneRecord
	for rows.Next() {
		var rec GeneRecord
		if err := rows.Scan(&rec.Name, &rec.Chromosome, &rec.Fmin, &rec.Fmax,
			&rec.Strand, &rec.Family, &rec.Index); err != nil {
			return nil, fmt.Errorf("scan gene: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FamilyHit is one gene's (chromosome, index) for a shared family.
type FamilyHit struct {
	Chromosome string
	Index      int
}

// GenesByFamily returns every gene's (chromosome, index) whose family tag
// equals family, used by micro-synteny (C8) and macro fan-out candidate
// selection (C10). The empty string (unassigned family) is never matched.
func (s *Store) GenesByFamily(ctx context.Context, family string) ([]FamilyHit, error) {
	if family == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT chromosome, idx FROM genes WHERE family = ?`, family)
	if err != nil {
		return nil, fmt.Errorf("genes by family %q: %w", family, err)
	}
	defer rows.Close()

	var out []FamilyHit
	for rows.Next() {
		var hit FamilyHit
		if err := rows.Scan(&hit.Chromosome, &hit.Index); err != nil {
			return nil, fmt.Errorf("scan family hit: %w", err)
		}
		out = append(out, hit)
	}
	return out, rows.Err()
}

// GenesByFamilyIn is GenesByFamily restricted to a set of candidate
// chromosomes, used by C10 when an explicit target list is given.
func (s *Store) GenesByFamilyIn(ctx context.Context, family string, chromosomes []string) ([]FamilyHit, error) {
	if family == "" || len(chromosomes) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(chromosomes))
	args := make([]interface{}, 0, len(chromosomes)+1)
	args = append(args, family)
	for i, c := range chromosomes {
		placeholders[i] = "?"
		args = append(args, c)
	}

	query := fmt.Sprintf(`
		SELECT chromosome, idx FROM genes WHERE family = ? AND chromosome IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("genes by family %q in targets: %w", family, err)
	}
	defer rows.Close()

	var out []FamilyHit
	for rows.Next() {
		var hit FamilyHit
		if err := rows.Scan(&hit.Chromosome, &hit.Index); err != nil {
			return nil, fmt.Errorf("scan family hit: %w", err)
		}
		out = append(out, hit)
	}
	return out, rows.Err()
}
