package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base and queue statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openKnowledge()
	if err != nil {
		return err
	}
	drafts, err := openDrafts()
	if err != nil {
		return err
	}

	ks := store.Stats()
	qs := drafts.Stats()

	if statsJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"knowledge": ks,
			"queue":     qs,
			"missing":   store.Missing(),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== KNOWLEDGE BASE ===")
	w := newTabWriter(out)
	fmt.Fprintf(w, "Facts\t%d\n", ks.Facts)
	fmt.Fprintf(w, "Actors\t%d\n", ks.Actors)
	fmt.Fprintf(w, "Narratives\t%d\n", ks.Narratives)
	fmt.Fprintf(w, "Quotes\t%d\n", ks.Quotes)
	fmt.Fprintf(w, "Anniversaries\t%d\n", ks.Anniversaries)
	fmt.Fprintf(w, "Sources\t%d\n", ks.SourcesTracked)
	fmt.Fprintf(w, "Corpus (scraped)\t%d\n", ks.CorpusScraped)
	fmt.Fprintf(w, "Corpus (samples)\t%d\n", ks.CorpusSamples)
	w.Flush()

	if missing := store.Missing(); len(missing) > 0 {
		fmt.Fprintf(out, "\nMissing documents: %v\n", missing)
	}

	fmt.Fprintln(out, "\n=== DRAFT QUEUE ===")
	w = newTabWriter(out)
	fmt.Fprintf(w, "Pending\t%d\n", qs.Pending)
	fmt.Fprintf(w, "Approved\t%d\n", qs.Approved)
	fmt.Fprintf(w, "Posted\t%d\n", qs.Posted)
	w.Flush()

	return nil
}
