package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/enrich"
	"github.com/faytuks/engine/internal/prompt"
)

var (
	enrichDraftID string
	enrichExecute bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a queued draft with historical context",
	Args:  cobra.NoArgs,
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().StringVar(&enrichDraftID, "draft", "", "Draft id to enrich")
	enrichCmd.Flags().BoolVar(&enrichExecute, "execute", false, "Call the configured provider and store the supplemental tweet")
	enrichCmd.MarkFlagRequired("draft")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	d, ok := drafts.Get(enrichDraftID)
	if !ok {
		return fmt.Errorf("no draft matches %q", enrichDraftID)
	}

	store, err := openKnowledge()
	if err != nil {
		return err
	}

	ectx := enrich.New(store).Enrich(d.English)
	promptText := prompt.New(store).Enrichment(d.English, ectx)

	out := cmd.OutOrStdout()
	if !enrichExecute {
		fmt.Fprintf(out, "Pattern: %s, facts matched: %d\n\n", ectx.Pattern, len(ectx.Facts))
		fmt.Fprintln(out, promptText)
		return nil
	}

	supplemental, err := runCompletion(cmd.Context(), promptText)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	d.Supplemental = supplemental
	d.EnrichedAt = &now
	if !drafts.Update(d) {
		return fmt.Errorf("draft %s changed state during enrichment", shortID(d.ID))
	}

	fmt.Fprintf(out, "Enriched %s:\n\n%s\n", shortID(d.ID), supplemental)
	return nil
}
