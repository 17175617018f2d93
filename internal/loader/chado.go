package loader

import (
	"context"
	"fmt"
	"sort"

	"github.com/legumeinfo/gcv/internal/store"
)

// chadoGene is one gene row pulled out of a Chado database's feature /
// featureloc / featureprop tables.
type chadoGene struct {
	name   string
	chrom  string
	fmin   int64
	fmax   int64
	strand int
	family string
}

// LoadChado reads chromosome and gene data out of a Chado database reached
// through DuckDB's postgres scanner extension and writes it into the
// store. dsn is a libpq-style connection
// string (e.g. "host=db port=5432 dbname=chado user=reader").
func (l *Loader) LoadChado(ctx context.Context, dsn string, opts Options) (Report, error) {
	var report Report

	if err := l.prepare(ctx, opts); err != nil {
		return report, err
	}

	db := l.store.DB()
	if _, err := db.ExecContext(ctx, `INSTALL postgres; LOAD postgres;`); err != nil {
		return report, fmt.Errorf("loader.LoadChado: load postgres extension: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(
		`ATTACH %s AS chado (TYPE postgres, READ_ONLY)`, quoteSQLString(dsn))); err != nil {
		return report, fmt.Errorf("loader.LoadChado: attach chado database: %w", err)
	}
	defer db.ExecContext(ctx, `DETACH chado`)

	sequenceTypes := opts.sequenceTypes()
	placeholders := make([]interface{}, 0, len(sequenceTypes)+2)
	placeholders = append(placeholders, opts.Genus, opts.Species)

	chromRows, err := db.QueryContext(ctx, buildChromosomeQuery(sequenceTypes), append(placeholders, inArgs(sequenceTypes)...)...)
	if err != nil {
		return report, fmt.Errorf("loader.LoadChado: query chromosomes: %w", err)
	}
	chromosomes := map[string]*store.ChromosomeRecord{}
	for chromRows.Next() {
		var name string
		var length int64
		if err := chromRows.Scan(&name, &length); err != nil {
			chromRows.Close()
			return report, fmt.Errorf("loader.LoadChado: scan chromosome: %w", err)
		}
		chromosomes[name] = &store.ChromosomeRecord{
			Name: name, Length: length, Genus: opts.Genus, Species: opts.Species, Strain: opts.Strain,
		}
	}
	if err := chromRows.Err(); err != nil {
		chromRows.Close()
		return report, fmt.Errorf("loader.LoadChado: read chromosomes: %w", err)
	}
	chromRows.Close()

	chromNames := make([]string, 0, len(chromosomes))
	for name := range chromosomes {
		chromNames = append(chromNames, name)
	}
	if err := l.checkNewCollision(ctx, opts, chromNames); err != nil {
		return report, err
	}

	geneRows, err := db.QueryContext(ctx, chadoGeneQuery, opts.Genus, opts.Species)
	if err != nil {
		return report, fmt.Errorf("loader.LoadChado: query genes: %w", err)
	}
	var genes []chadoGene
	for geneRows.Next() {
		var g chadoGene
		var strand int
		if err := geneRows.Scan(&g.name, &g.chrom, &g.fmin, &g.fmax, &strand, &g.family); err != nil {
			geneRows.Close()
			return report, fmt.Errorf("loader.LoadChado: scan gene: %w", err)
		}
		g.strand = strand
		if _, ok := chromosomes[g.chrom]; !ok {
			report.SkippedGenes++
			continue
		}
		genes = append(genes, g)
	}
	if err := geneRows.Err(); err != nil {
		geneRows.Close()
		return report, fmt.Errorf("loader.LoadChado: read genes: %w", err)
	}
	geneRows.Close()

	sort.Slice(genes, func(i, j int) bool {
		if genes[i].chrom != genes[j].chrom {
			return genes[i].chrom < genes[j].chrom
		}
		return genes[i].fmin < genes[j].fmin
	})

	byChrom := map[string][]chadoGene{}
	for _, g := range genes {
		byChrom[g.chrom] = append(byChrom[g.chrom], g)
	}

	for name, rec := range chromosomes {
		if err := l.store.PutChromosome(ctx, *rec); err != nil {
			return report, fmt.Errorf("loader.LoadChado: put chromosome %q: %w", name, err)
		}
		report.Chromosomes++

		entries := byChrom[name]
		seqEntries := make([]store.GeneSeqEntry, len(entries))
		for i, g := range entries {
			seqEntries[i] = store.GeneSeqEntry{Gene: g.name, Family: g.family, Fmin: g.fmin, Fmax: g.fmax}
		}
		if err := l.store.PutChromosomeGenes(ctx, name, seqEntries); err != nil {
			return report, fmt.Errorf("loader.LoadChado: put chromosome genes %q: %w", name, err)
		}

		for i, g := range entries {
			if err := l.store.PutGene(ctx, store.GeneRecord{
				Name: g.name, Chromosome: name, Fmin: g.fmin, Fmax: g.fmax,
				Strand: g.strand, Family: g.family, Index: i,
			}); err != nil {
				return report, fmt.Errorf("loader.LoadChado: put gene %q: %w", g.name, err)
			}
			report.Genes++
		}
	}

	if err := l.finish(ctx, opts); err != nil {
		return report, err
	}
	return report, nil
}

// buildChromosomeQuery selects chromosome-like features (by cvterm name)
// belonging to (genus, species) from the attached chado schema.
func buildChromosomeQuery(sequenceTypes []string) string {
	placeholders := ""
	for i := range sequenceTypes {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
	}
	return fmt.Sprintf(`
		SELECT f.name, (fl.fmax - fl.fmin) AS length
		FROM chado.feature f
		JOIN chado.organism o ON o.organism_id = f.organism_id
		JOIN chado.cvterm t ON t.cvterm_id = f.type_id
		JOIN chado.featureloc fl ON fl.feature_id = f.feature_id
		WHERE o.genus = ? AND o.species = ? AND t.name IN (%s)
	`, placeholders)
}

const chadoGeneQuery = `
	SELECT
		gene.name,
		chrom.name AS chromosome,
		fl.fmin,
		fl.fmax,
		fl.strand,
		COALESCE(fam.value, '') AS family
	FROM chado.feature gene
	JOIN chado.organism o ON o.organism_id = gene.organism_id
	JOIN chado.cvterm t ON t.cvterm_id = gene.type_id AND t.name = 'gene'
	JOIN chado.featureloc fl ON fl.feature_id = gene.feature_id
	JOIN chado.feature chrom ON chrom.feature_id = fl.srcfeature_id
	LEFT JOIN chado.featureprop fam
		ON fam.feature_id = gene.feature_id
		AND fam.type_id IN (SELECT cvterm_id FROM chado.cvterm WHERE name = 'gene family')
	WHERE o.genus = ? AND o.species = ?
`

func inArgs(vals []string) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func quoteSQLString(s string) string {
	escaped := ""
	for _, r := range s {
		if r == '\'' {
			escaped += "''"
			continue
		}
		escaped += string(r)
	}
	return "'" + escaped + "'"
}
