package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/ingest"
	"github.com/faytuks/engine/internal/ledger"
	"github.com/faytuks/engine/internal/llm"
)

var daemonExecute bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the ingestion coordinator until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

func init() {
	daemonCmd.Flags().BoolVar(&daemonExecute, "execute", false, "Translate breaking items via the configured provider")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}

	seen, err := ledger.Open(cfg.Paths.LedgerPath)
	if err != nil {
		return err
	}
	defer seen.Close()

	var completer llm.Completer
	if daemonExecute {
		completer, err = newCompleter()
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cycle := ingest.New(cfg.Paths.BucketsDir, cfg.Ingest, drafts, seen, completer, cfg.Generation.Timeout.Duration())
	coord := ingest.NewCoordinator(cycle, cfg.Ingest.Interval.Duration())

	slog.Info("daemon started", "component", "cli", "interval", cfg.Ingest.Interval.Duration().String())
	coord.Run(ctx)
	slog.Info("daemon stopped", "component", "cli")
	return nil
}
