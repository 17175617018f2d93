package store

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// punctuationCutset is the fixed set of punctuation characters treated as
// whitespace when breaking a search query into tokens.
const punctuationCutset = ",.<>{}[]\"':;!@#$%^&*()-+=~"

// Tokenize breaks query on punctuationCutset, folding runs of punctuation
// and whitespace into field separators, for chromosome- and gene-name
// search.
func Tokenize(query string) []string {
	normalized := norm.NFC.String(query)
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return strings.ContainsRune(punctuationCutset, r) || r == ' ' || r == '\t' || r == '\n'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// searchNames runs a tokenized, case-insensitive substring search against
// a table's name column and returns matching names. Every token must
// appear somewhere in the name (AND semantics), which is the common
// behavior of a text-search index over a single field. An empty result
// set is a valid response, never an error.
func (s *Store) searchNames(ctx context.Context, table, nameColumn, query string) ([]string, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT DISTINCT %s FROM %s WHERE ", nameColumn, table)
	args := make([]interface{}, 0, len(tokens))
	for i, t := range tokens {
		if i > 0 {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(&b, "%s ILIKE ?", nameColumn)
		args = append(args, "%"+t+"%")
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan %s search result: %w", table, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SearchChromosomeNames fuzzy-matches against chromosomeIdx's name field.
func (s *Store) SearchChromosomeNames(ctx context.Context, query string) ([]string, error) {
	return s.searchNames(ctx, "chromosomes", "name", query)
}

// SearchGeneNames fuzzy-matches against geneIdx's name field.
func (s *Store) SearchGeneNames(ctx context.Context, query string) ([]string, error) {
	return s.searchNames(ctx, "genes", "name", query)
}
