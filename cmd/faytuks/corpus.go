package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/knowledge"
)

var (
	corpusPattern string
	corpusLimit   int
	corpusScraped bool
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Search the tweet corpus",
	Args:  cobra.NoArgs,
	RunE:  runCorpus,
}

func init() {
	corpusCmd.Flags().StringVar(&corpusPattern, "pattern", "", "Filter by pattern (e.g. fire_parallel)")
	corpusCmd.Flags().IntVar(&corpusLimit, "limit", 5, "Number of results")
	corpusCmd.Flags().BoolVar(&corpusScraped, "scraped", false, "Search scraped tweets instead of samples")
	rootCmd.AddCommand(corpusCmd)
}

func runCorpus(cmd *cobra.Command, args []string) error {
	store, err := openKnowledge()
	if err != nil {
		return err
	}

	var tweets []knowledge.CorpusTweet
	switch {
	case corpusPattern != "":
		tweets = store.CorpusByPattern(corpusPattern)
	case corpusScraped:
		tweets = store.CorpusScraped()
	default:
		tweets = store.CorpusSamples("")
	}

	if len(tweets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No corpus entries found.")
		return nil
	}
	if len(tweets) > corpusLimit {
		tweets = tweets[:corpusLimit]
	}

	out := cmd.OutOrStdout()
	for _, t := range tweets {
		text := t.Tweet
		if text == "" {
			text = t.Text
		}
		fmt.Fprintf(out, "[%s] %s\n", t.Pattern, text)
		if t.Date != "" {
			fmt.Fprintf(out, "  %s\n", t.Date)
		}
		fmt.Fprintln(out)
	}
	return nil
}
