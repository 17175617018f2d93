// Command gcv-loader bulk-loads chromosome and gene data into the store
// from either a GFF file pair or a Chado database, via the "gff" and
// "chado" subcommands.
package main

import (
	"os"

	"github.com/legumeinfo/gcv/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes, matching cmd/vibe-vep/main.go's convention.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gcv-loader",
		Short:         "Load chromosome and gene data into the Genome Context Viewer store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	config.BindShared(cmd)
	cmd.AddCommand(newGFFCmd())
	cmd.AddCommand(newChadoCmd())
	return cmd
}

func newLogger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	return log
}

