package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/ingest"
	"github.com/faytuks/engine/internal/ledger"
	"github.com/faytuks/engine/internal/llm"
)

var refreshExecute bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one bucket ingestion cycle",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshExecute, "execute", false, "Translate breaking items via the configured provider")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
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
	if refreshExecute {
		completer, err = newCompleter()
		if err != nil {
			return err
		}
	}

	cycle := ingest.New(cfg.Paths.BucketsDir, cfg.Ingest, drafts, seen, completer, cfg.Generation.Timeout.Duration())
	report := cycle.Run(cmd.Context())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== INGESTION CYCLE %s ===\n", report.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Drafts created: %d\n", len(report.DraftsCreated))
	for _, id := range report.DraftsCreated {
		fmt.Fprintf(out, "  %s\n", shortID(id))
	}
	fmt.Fprintf(out, "Skipped (seen): %d\n", report.Skipped)
	for _, e := range report.Errors {
		fmt.Fprintf(out, "  error: %s\n", e)
	}

	counts := drafts.Stats()
	fmt.Fprintf(out, "\nQueue: %d pending, %d approved, %d posted\n",
		counts.Pending, counts.Approved, counts.Posted)
	return nil
}
