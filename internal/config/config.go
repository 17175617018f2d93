// Package config binds the loader CLI's flags to viper, so every flag
// also reads from a documented environment variable, matching
// cmd/vibe-vep/config.go's viper-backed settings idiom. No config file
// is read.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every bound environment variable, e.g.
// --chunk-size binds to GCV_LOADER_CHUNK_SIZE.
const EnvPrefix = "GCV_LOADER"

// Loader holds the resolved settings for one loader invocation, shared by
// both the "chado" and "gff" subcommands.
type Loader struct {
	StorePath     string
	ChunkSize     int
	LoadType      string
	SequenceTypes []string
	NoSave        bool
	Genus         string
	Species       string
	Strain        string
	UseUniquename bool
	DryRun        bool

	// gff-specific
	ChromosomeGFF string
	GeneGFF       string
	FamilyMap     string

	// chado-specific
	ChadoDSN string
}

// BindShared registers the flags common to every loader subcommand
// (store connection, batching, organism identity) on cmd's persistent
// flag set and binds each one to a GCV_LOADER_* environment variable.
func BindShared(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("store", "", "path to the DuckDB store file (empty for in-memory)")
	flags.Int("chunk-size", 1000, "batch size setting (echoed by --dry-run; the loaders write gene records one row at a time regardless)")
	flags.String("load-type", "new", "collision policy for an existing organism: new, reload, append")
	flags.StringSlice("sequence-types", nil, "GFF feature types treated as chromosomes (default: chromosome, supercontig, chloroplast, mitochondrion)")
	flags.Bool("no-save", false, "load into the store but skip the final schema-version stamp and disk checkpoint")
	flags.String("genus", "", "organism genus (required)")
	flags.String("species", "", "organism species (required)")
	flags.String("strain", "", "organism strain tag")
	flags.Bool("use-uniquename", false, "prefer the GFF ID attribute over Name for display names")
	flags.Bool("dry-run", false, "print the resolved configuration and exit without loading")

	bindEnv(flags, "store", "chunk-size", "load-type", "sequence-types", "no-save",
		"genus", "species", "strain", "use-uniquename", "dry-run")
}

// BindGFF registers the gff subcommand's source flags.
func BindGFF(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("chromosome-gff", "", "chromosome GFF3 file (.gz accepted)")
	flags.String("gene-gff", "", "gene GFF3 file (.gz accepted)")
	flags.String("gfa", "", "tab-separated gene-to-family map file (.gz accepted)")
	bindEnv(flags, "chromosome-gff", "gene-gff", "gfa")
}

// BindChado registers the chado subcommand's connection flags.
func BindChado(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("dsn", "", "libpq-style Chado database connection string")
	bindEnv(flags, "dsn")
}

// bindEnv ties each named flag to its pflag.Flag via viper.BindPFlag and
// registers the matching GCV_LOADER_<NAME> environment variable, with
// dashes folded to underscores.
func bindEnv(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		key := name
		_ = viper.BindPFlag(key, f)
		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		_ = viper.BindEnv(key, env)
	}
}

// Resolve gathers the bound settings (flags, falling back to env, falling
// back to defaults already set on the flags) into a Loader. Call after
// cmd.Execute has parsed flags and BindEnv/BindPFlag have run.
func Resolve() Loader {
	return Loader{
		StorePath:     viper.GetString("store"),
		ChunkSize:     viper.GetInt("chunk-size"),
		LoadType:      viper.GetString("load-type"),
		SequenceTypes: viper.GetStringSlice("sequence-types"),
		NoSave:        viper.GetBool("no-save"),
		Genus:         viper.GetString("genus"),
		Species:       viper.GetString("species"),
		Strain:        viper.GetString("strain"),
		UseUniquename: viper.GetBool("use-uniquename"),
		DryRun:        viper.GetBool("dry-run"),
		ChromosomeGFF: viper.GetString("chromosome-gff"),
		GeneGFF:       viper.GetString("gene-gff"),
		FamilyMap:     viper.GetString("gfa"),
		ChadoDSN:      viper.GetString("dsn"),
	}
}

// Describe renders l as a YAML-ish settings dump for the --dry-run echo,
// matching runConfigShow's "show what would happen" idiom.
func (l Loader) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "store: %q\n", l.StorePath)
	fmt.Fprintf(&b, "chunk-size: %d\n", l.ChunkSize)
	fmt.Fprintf(&b, "load-type: %s\n", l.LoadType)
	fmt.Fprintf(&b, "sequence-types: %v\n", l.SequenceTypes)
	fmt.Fprintf(&b, "no-save: %t\n", l.NoSave)
	fmt.Fprintf(&b, "genus: %s\n", l.Genus)
	fmt.Fprintf(&b, "species: %s\n", l.Species)
	fmt.Fprintf(&b, "strain: %s\n", l.Strain)
	fmt.Fprintf(&b, "use-uniquename: %t\n", l.UseUniquename)
	if l.ChromosomeGFF != "" || l.GeneGFF != "" {
		fmt.Fprintf(&b, "chromosome-gff: %s\n", l.ChromosomeGFF)
		fmt.Fprintf(&b, "gene-gff: %s\n", l.GeneGFF)
		fmt.Fprintf(&b, "gfa: %s\n", l.FamilyMap)
	}
	if l.ChadoDSN != "" {
		fmt.Fprintf(&b, "dsn: %s\n", l.ChadoDSN)
	}
	return b.String()
}
