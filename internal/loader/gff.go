package loader

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/legumeinfo/gcv/internal/store"
)

// gffFeature is one parsed, tab-delimited GFF3 line.
type gffFeature struct {
	seqid      string
	featType   string
	start      int64
	end        int64
	strand     string
	attributes map[string]string
}

func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip reader for %q: %w", path, err)
		}
		return gzipReadCloser{gz, f}, nil
	}
	return f, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

func scanGFF(path string, visit func(gffFeature) error) error {
	f, err := openMaybeGzip(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		feat, err := parseGFFLine(line)
		if err != nil {
			continue
		}
		if err := visit(feat); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseGFFLine(line string) (gffFeature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return gffFeature{}, fmt.Errorf("invalid GFF line: expected 9 fields, got %d", len(fields))
	}
	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return gffFeature{}, fmt.Errorf("parse start: %w", err)
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return gffFeature{}, fmt.Errorf("parse end: %w", err)
	}
	return gffFeature{
		seqid:      fields[0],
		featType:   fields[2],
		start:      start,
		end:        end,
		strand:     fields[6],
		attributes: parseGFFAttributes(fields[8]),
	}, nil
}

// parseGFFAttributes parses the GFF3 attribute column: key=value pairs
// separated by semicolons, URL-escaping not decoded (not needed by any
// attribute this loader reads).
func parseGFFAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		attrs[kv[0]] = kv[1]
	}
	return attrs
}

func gffDisplayName(feat gffFeature, useUniquename bool) string {
	if useUniquename {
		if id, ok := feat.attributes["ID"]; ok && id != "" {
			return id
		}
	}
	if name, ok := feat.attributes["Name"]; ok && name != "" {
		return name
	}
	return feat.attributes["ID"]
}

func gffStrand(s string) int {
	if s == "-" {
		return -1
	}
	return 1
}

// LoadGFF reads a chromosome GFF, a gene GFF, and a tab-separated
// gene-to-family map and writes the result into the store. Family-map
// entries naming a gene the gene GFF never provided are silently
// dropped, with the count surfaced in Report.
func (l *Loader) LoadGFF(ctx context.Context, chromGFFPath, geneGFFPath, familyMapPath string, opts Options) (Report, error) {
	var report Report

	if err := l.prepare(ctx, opts); err != nil {
		return report, err
	}

	sequenceTypes := map[string]bool{}
	for _, t := range opts.sequenceTypes() {
		sequenceTypes[t] = true
	}

	chromosomes := map[string]*store.ChromosomeRecord{}
	err := scanGFF(chromGFFPath, func(feat gffFeature) error {
		if !sequenceTypes[feat.featType] {
			return nil
		}
		name := gffDisplayName(feat, opts.UseUniquename)
		if name == "" {
			return nil
		}
		chromosomes[name] = &store.ChromosomeRecord{
			Name:    name,
			Length:  feat.end - feat.start + 1,
			Genus:   opts.Genus,
			Species: opts.Species,
			Strain:  opts.Strain,
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("loader.LoadGFF: read chromosome GFF: %w", err)
	}

	chromNames := make([]string, 0, len(chromosomes))
	for name := range chromosomes {
		chromNames = append(chromNames, name)
	}
	if err := l.checkNewCollision(ctx, opts, chromNames); err != nil {
		return report, err
	}

	type geneEntry struct {
		name   string
		chrom  string
		fmin   int64
		fmax   int64
		strand int
	}
	var genes []geneEntry
	err = scanGFF(geneGFFPath, func(feat gffFeature) error {
		if feat.featType != "gene" {
			return nil
		}
		if _, ok := chromosomes[feat.seqid]; !ok {
			report.SkippedGenes++
			return nil
		}
		name := gffDisplayName(feat, opts.UseUniquename)
		if name == "" {
			report.SkippedGenes++
			return nil
		}
		genes = append(genes, geneEntry{
			name:   name,
			chrom:  feat.seqid,
			fmin:   feat.start - 1,
			fmax:   feat.end,
			strand: gffStrand(feat.strand),
		})
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("loader.LoadGFF: read gene GFF: %w", err)
	}

	knownGenes := make(map[string]bool, len(genes))
	for _, g := range genes {
		knownGenes[g.name] = true
	}
	families, skippedFamilyEntries, err := parseFamilyMap(familyMapPath, knownGenes)
	if err != nil {
		return report, fmt.Errorf("loader.LoadGFF: read family map: %w", err)
	}
	report.SkippedFamilyEntries = skippedFamilyEntries

	sort.Slice(genes, func(i, j int) bool {
		if genes[i].chrom != genes[j].chrom {
			return genes[i].chrom < genes[j].chrom
		}
		return genes[i].fmin < genes[j].fmin
	})

	byChrom := map[string][]geneEntry{}
	for _, g := range genes {
		byChrom[g.chrom] = append(byChrom[g.chrom], g)
	}

	for name, rec := range chromosomes {
		if err := l.store.PutChromosome(ctx, *rec); err != nil {
			return report, fmt.Errorf("loader.LoadGFF: put chromosome %q: %w", name, err)
		}
		report.Chromosomes++

		entries := byChrom[name]
		seqEntries := make([]store.GeneSeqEntry, len(entries))
		for i, g := range entries {
			seqEntries[i] = store.GeneSeqEntry{
				Gene: g.name, Family: families[g.name], Fmin: g.fmin, Fmax: g.fmax,
			}
		}

		// PutChromosomeGenes indexes rows by position within the slice
		// it's given, so it's written whole in one transaction. The
		// per-gene upserts below are issued one row at a time;
		// Options.ChunkSize does not group them.
		if err := l.store.PutChromosomeGenes(ctx, name, seqEntries); err != nil {
			return report, fmt.Errorf("loader.LoadGFF: put chromosome genes %q: %w", name, err)
		}

		for i, g := range entries {
			if err := l.store.PutGene(ctx, store.GeneRecord{
				Name: g.name, Chromosome: name, Fmin: g.fmin, Fmax: g.fmax,
				Strand: g.strand, Family: families[g.name], Index: i,
			}); err != nil {
				return report, fmt.Errorf("loader.LoadGFF: put gene %q: %w", g.name, err)
			}
			report.Genes++
		}
	}

	if err := l.finish(ctx, opts); err != nil {
		return report, err
	}
	return report, nil
}

// parseFamilyMap reads a tab-separated `gene\tfamily` file. Entries
// referencing a gene name absent from knownGenes are dropped silently,
// with the count returned so the caller can surface it.
func parseFamilyMap(path string, knownGenes map[string]bool) (map[string]string, int, error) {
	families := map[string]string{}
	if path == "" {
		return families, 0, nil
	}

	f, err := openMaybeGzip(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	skipped := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		gene, family := fields[0], fields[1]
		if !knownGenes[gene] {
			skipped++
			continue
		}
		families[gene] = family
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return families, skipped, nil
}
