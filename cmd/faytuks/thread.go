package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/draft"
	"github.com/faytuks/engine/internal/prompt"
)

var (
	threadTopic   string
	threadLength  int
	threadExecute bool
	threadQueue   bool
)

var threadCmd = &cobra.Command{
	Use:   "thread",
	Short: "Generate a thread prompt",
	Args:  cobra.NoArgs,
	RunE:  runThread,
}

func init() {
	threadCmd.Flags().StringVar(&threadTopic, "topic", "", "Topic for the thread")
	threadCmd.Flags().IntVar(&threadLength, "length", 6, "Number of tweets")
	threadCmd.Flags().BoolVar(&threadExecute, "execute", false, "Call the generation API")
	threadCmd.Flags().BoolVar(&threadQueue, "queue", false, "Save result to the draft queue")
	threadCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(threadCmd)
}

func runThread(cmd *cobra.Command, args []string) error {
	store, err := openKnowledge()
	if err != nil {
		return err
	}

	promptText := prompt.New(store).Thread(threadTopic, threadLength)

	if !threadExecute {
		fmt.Fprintln(cmd.OutOrStdout(), promptText)
		return nil
	}

	text, err := runCompletion(cmd.Context(), promptText)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if threadQueue {
		return queueDraft(cmd, draft.Fields{
			English: text,
			Pattern: "thread",
			Sources: []string{"thread:" + threadTopic},
		})
	}
	return nil
}
