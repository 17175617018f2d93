package store

// SchemaVersion is the schema version this build of the store writes and
// expects.
const SchemaVersion = "3"

// CompatibleSchemaVersions are the versions a service built against this
// package will read without refusing to start.
var CompatibleSchemaVersions = []string{"2", "3"}

// ddl creates the tables backing chromosome records, the per-chromosome
// gene sequence (one ordered table keyed by (chromosome, idx)), gene
// records, and the schema version scalars. Indexes stand in for the
// chromosome/gene search indexes; fuzzy text matching is done at query
// time (see search.go) since DuckDB has no built-in fuzzy operator.
const ddl = `
CREATE TABLE IF NOT EXISTS schema_meta (
	key   VARCHAR PRIMARY KEY,
	value VARCHAR
);

CREATE TABLE IF NOT EXISTS schema_compatible_versions (
	version VARCHAR PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS chromosomes (
	name    VARCHAR PRIMARY KEY,
	length  BIGINT NOT NULL,
	genus   VARCHAR NOT NULL,
	species VARCHAR NOT NULL,
	strain  VARCHAR
);

CREATE TABLE IF NOT EXISTS chromosome_genes (
	chromosome VARCHAR NOT NULL,
	idx        INTEGER NOT NULL,
	gene       VARCHAR NOT NULL,
	family     VARCHAR NOT NULL,
	fmin       BIGINT NOT NULL,
	fmax       BIGINT NOT NULL,
	PRIMARY KEY (chromosome, idx)
);

CREATE TABLE IF NOT EXISTS genes (
	name       VARCHAR PRIMARY KEY,
	chromosome VARCHAR NOT NULL,
	fmin       BIGINT NOT NULL,
	fmax       BIGINT NOT NULL,
	strand     TINYINT NOT NULL,
	family     VARCHAR NOT NULL,
	idx        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chromosomes_genus_species ON chromosomes(genus, species);
CREATE INDEX IF NOT EXISTS idx_genes_chromosome ON genes(chromosome);
CREATE INDEX IF NOT EXISTS idx_genes_family ON genes(family);
CREATE INDEX IF NOT EXISTS idx_chromosome_genes_family ON chromosome_genes(family);
`
