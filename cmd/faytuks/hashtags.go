package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hashtagsType string

var hashtagsCmd = &cobra.Command{
	Use:   "hashtags",
	Short: "Get hashtag recommendations for a content type",
	Args:  cobra.NoArgs,
	RunE:  runHashtags,
}

func init() {
	hashtagsCmd.Flags().StringVar(&hashtagsType, "type", "breaking_news",
		"Content type (breaking_news/historical_parallel/victim_memorial/analysis_thread/counter_propaganda)")
	rootCmd.AddCommand(hashtagsCmd)
}

func runHashtags(cmd *cobra.Command, args []string) error {
	store, err := openKnowledge()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if combo, ok := store.HashtagsForContentType(hashtagsType); ok {
		fmt.Fprintf(out, "=== %s ===\n", hashtagsType)
		fmt.Fprintf(out, "Recommended: %s\n", combo.Recommended)
		if combo.Example != "" {
			fmt.Fprintf(out, "Example: %s\n", combo.Example)
		}
		fmt.Fprintln(out)
	} else {
		fmt.Fprintf(out, "No combination recorded for %q.\n\n", hashtagsType)
	}

	primary := store.PrimaryHashtags()
	if len(primary) == 0 {
		return nil
	}
	fmt.Fprintln(out, "Primary hashtags:")
	w := newTabWriter(out)
	for _, h := range primary {
		fmt.Fprintf(w, "%s\t%s\n", h.Tag, h.Usage)
	}
	w.Flush()
	return nil
}
