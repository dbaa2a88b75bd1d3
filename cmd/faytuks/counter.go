package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/draft"
	"github.com/faytuks/engine/internal/prompt"
)

var (
	counterClaim   string
	counterSource  string
	counterExecute bool
	counterQueue   bool
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Generate a counter-narrative prompt",
	Args:  cobra.NoArgs,
	RunE:  runCounter,
}

func init() {
	counterCmd.Flags().StringVar(&counterClaim, "claim", "", "Claim to counter")
	counterCmd.Flags().StringVar(&counterSource, "source", "regime", "Source type (regime/tankie/mek/niac/bbc/voa/...)")
	counterCmd.Flags().BoolVar(&counterExecute, "execute", false, "Call the generation API")
	counterCmd.Flags().BoolVar(&counterQueue, "queue", false, "Save result to the draft queue")
	counterCmd.MarkFlagRequired("claim")
	rootCmd.AddCommand(counterCmd)
}

func runCounter(cmd *cobra.Command, args []string) error {
	store, err := openKnowledge()
	if err != nil {
		return err
	}

	promptText := prompt.New(store).Counter(counterClaim, counterSource)

	if !counterExecute {
		fmt.Fprintln(cmd.OutOrStdout(), promptText)
		return nil
	}

	text, err := runCompletion(cmd.Context(), promptText)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if counterQueue {
		return queueDraft(cmd, draft.Fields{
			English: text,
			Pattern: "counter",
			Sources: []string{"counter:" + counterSource},
		})
	}
	return nil
}
