package main

import (
	"context"
	"fmt"

	"github.com/legumeinfo/gcv/internal/config"
	"github.com/legumeinfo/gcv/internal/loader"
	"github.com/legumeinfo/gcv/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGFFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gff",
		Short: "Load chromosomes and genes from a GFF file pair",
		Example: `  gcv-loader gff --genus Glycine --species max \
    --chromosome-gff chromosomes.gff3.gz --gene-gff genes.gff3.gz --gfa families.tsv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGFF()
		},
	}
	config.BindGFF(cmd)
	return cmd
}

func runGFF() error {
	cfg := config.Resolve()

	if cfg.DryRun {
		fmt.Print(cfg.Describe())
		return nil
	}
	if cfg.ChromosomeGFF == "" || cfg.GeneGFF == "" {
		return fmt.Errorf("gcv-loader gff: --chromosome-gff and --gene-gff are required")
	}

	log := newLogger()
	defer log.Sync()

	s, err := store.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("gcv-loader gff: open store: %w", err)
	}
	defer s.Close()

	l := loader.New(s)
	report, err := l.LoadGFF(context.Background(), cfg.ChromosomeGFF, cfg.GeneGFF, cfg.FamilyMap, loader.Options{
		LoadType:      loader.LoadType(cfg.LoadType),
		ChunkSize:     cfg.ChunkSize,
		SequenceTypes: cfg.SequenceTypes,
		NoSave:        cfg.NoSave,
		Genus:         cfg.Genus,
		Species:       cfg.Species,
		Strain:        cfg.Strain,
		UseUniquename: cfg.UseUniquename,
	})
	if err != nil {
		log.Error("gff load failed", zap.Error(err))
		return err
	}

	printReport(report)
	return nil
}
