package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/history"
)

var (
	histLimit         int
	histQuery         string
	histPattern       string
	histMinEngagement float64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the shared generation history",
}

var historyRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent draft generations",
	Args:  cobra.NoArgs,
	RunE:  runHistoryRecent,
}

var historySearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search published tweets",
	Args:  cobra.NoArgs,
	RunE:  runHistorySearch,
}

var historyBestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best-performing tweet for a pattern",
	Args:  cobra.NoArgs,
	RunE:  runHistoryBest,
}

func init() {
	historyRecentCmd.Flags().IntVar(&histLimit, "limit", 10, "Maximum entries to show")

	historySearchCmd.Flags().StringVar(&histQuery, "query", "", "Text to match in published tweets")
	historySearchCmd.Flags().StringVar(&histPattern, "pattern", "", "Filter by pattern")
	historySearchCmd.Flags().Float64Var(&histMinEngagement, "min-engagement", 0, "Minimum engagement rate")

	historyBestCmd.Flags().StringVar(&histPattern, "pattern", "", "Pattern to rank")
	historyBestCmd.MarkFlagRequired("pattern")

	historyCmd.AddCommand(historyRecentCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyBestCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadHistory() (*history.Log, error) {
	return history.Load(cfg.Paths.HistoryFile)
}

func runHistoryRecent(cmd *cobra.Command, args []string) error {
	log, err := loadHistory()
	if err != nil {
		return err
	}

	entries := log.Recent(histLimit)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== RECENT DRAFTS (%d) ===\n", len(entries))
	w := newTabWriter(out)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.GeneratedAt, e.Theme)
	}
	w.Flush()
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	log, err := loadHistory()
	if err != nil {
		return err
	}

	matches := log.PublishedMatching(histQuery, histPattern, histMinEngagement)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== PUBLISHED MATCHES (%d) ===\n\n", len(matches))
	for _, e := range matches {
		fmt.Fprintf(out, "%s | %s | engagement %.2f\n", e.ID, e.Pattern, e.EngagementRate())
		fmt.Fprintf(out, "  %s\n", truncate(e.Tweet, 100))
	}
	return nil
}

func runHistoryBest(cmd *cobra.Command, args []string) error {
	log, err := loadHistory()
	if err != nil {
		return err
	}

	best, ok := log.BestTemplate(histPattern)
	if !ok {
		return fmt.Errorf("no published tweets recorded for pattern %q", histPattern)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Best %s tweet (engagement %.2f):\n\n%s\n", best.Pattern, best.EngagementRate(), best.Tweet)
	if best.WhyItWorked != "" {
		fmt.Fprintf(out, "\nWhy it worked: %s\n", best.WhyItWorked)
	}
	return nil
}
