package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/history"
)

var postedURL string

var postedCmd = &cobra.Command{
	Use:   "posted",
	Short: "Track posted tweets",
}

var postedConfirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "Confirm an approved draft was posted",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostedConfirm,
}

var postedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posted tweets",
	Args:  cobra.NoArgs,
	RunE:  runPostedList,
}

var postedStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Posting statistics by pattern",
	Args:  cobra.NoArgs,
	RunE:  runPostedStats,
}

func init() {
	postedConfirmCmd.Flags().StringVar(&postedURL, "url", "", "Tweet URL for the posted draft")

	postedCmd.AddCommand(postedConfirmCmd)
	postedCmd.AddCommand(postedListCmd)
	postedCmd.AddCommand(postedStatsCmd)
	rootCmd.AddCommand(postedCmd)
}

// tweetIDFromURL extracts the numeric status id from a tweet URL.
func tweetIDFromURL(url string) string {
	_, after, found := strings.Cut(url, "/status/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "?")
	return id
}

func runPostedConfirm(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}

	tweetID := tweetIDFromURL(postedURL)
	if !drafts.MarkPosted(args[0], tweetID) {
		return fmt.Errorf("no approved draft matches %q", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as posted\n", args[0])

	// Record in the shared generation history; failure to write the
	// log never undoes the posted transition.
	if d, ok := drafts.Get(args[0]); ok {
		log, err := history.Load(cfg.Paths.HistoryFile)
		if err == nil {
			_, err = log.AddPublished(d.English, d.Pattern, nil, d.Hashtags, "")
		}
		if err != nil {
			slog.Warn("history update failed", "component", "cli", "error", err)
		}
	}
	return nil
}

func runPostedList(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}

	posted := drafts.ListPosted()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== POSTED TWEETS (%d) ===\n\n", len(posted))

	for _, d := range posted {
		postedAt := "N/A"
		if d.PostedAt != nil {
			postedAt = d.PostedAt.Format("2006-01-02")
		}
		fmt.Fprintf(out, "%s | %s | %s\n", shortID(d.ID), postedAt, d.Pattern)
		if d.TweetID != "" {
			fmt.Fprintf(out, "  https://x.com/FaytuksNetwork/status/%s\n", d.TweetID)
		}
	}
	return nil
}

func runPostedStats(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}

	byPattern := drafts.PostedByPattern()
	total := 0
	type row struct {
		pattern string
		count   int
	}
	rows := make([]row, 0, len(byPattern))
	for p, c := range byPattern {
		rows = append(rows, row{p, c})
		total += c
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].pattern < rows[j].pattern
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== POSTING STATS ===")
	fmt.Fprintf(out, "Total posted: %d\n\nBy pattern:\n", total)
	w := newTabWriter(out)
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%d\n", r.pattern, r.count)
	}
	w.Flush()
	return nil
}
