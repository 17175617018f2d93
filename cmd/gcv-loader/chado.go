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

func newChadoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chado",
		Short: "Load chromosomes and genes from a Chado database",
		Example: `  gcv-loader chado --genus Glycine --species max \
    --dsn "host=db port=5432 dbname=chado user=reader"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChado()
		},
	}
	config.BindChado(cmd)
	return cmd
}

func runChado() error {
	cfg := config.Resolve()

	if cfg.DryRun {
		fmt.Print(cfg.Describe())
		return nil
	}
	if cfg.ChadoDSN == "" {
		return fmt.Errorf("gcv-loader chado: --dsn is required")
	}

	log := newLogger()
	defer log.Sync()

	s, err := store.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("gcv-loader chado: open store: %w", err)
	}
	defer s.Close()

	l := loader.New(s)
	report, err := l.LoadChado(context.Background(), cfg.ChadoDSN, loader.Options{
		LoadType:      loader.LoadType(cfg.LoadType),
		ChunkSize:     cfg.ChunkSize,
		SequenceTypes: cfg.SequenceTypes,
		NoSave:        cfg.NoSave,
		Genus:         cfg.Genus,
		Species:       cfg.Species,
		Strain:        cfg.Strain,
	})
	if err != nil {
		log.Error("chado load failed", zap.Error(err))
		return err
	}

	printReport(report)
	return nil
}
