package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/prompt"
)

var (
	labTest     string
	labTweet    string
	labParallel string
	labExecute  bool
)

var labCmd = &cobra.Command{
	Use:   "lab",
	Short: "Run a single laboratory check on a tweet",
	Args:  cobra.NoArgs,
	RunE:  runLab,
}

func init() {
	labCmd.Flags().StringVar(&labTest, "test", "", "Check to run (fact-check/voice/parallel/full)")
	labCmd.Flags().StringVar(&labTweet, "tweet", "", "Tweet to test")
	labCmd.Flags().StringVar(&labParallel, "parallel", "", "Claimed parallel (for --test parallel)")
	labCmd.Flags().BoolVar(&labExecute, "execute", false, "Call the generation API")
	labCmd.MarkFlagRequired("test")
	labCmd.MarkFlagRequired("tweet")
	rootCmd.AddCommand(labCmd)
}

func runLab(cmd *cobra.Command, args []string) error {
	var promptText string
	switch labTest {
	case "fact-check":
		promptText = prompt.FactCheck(labTweet, nil)
	case "voice":
		promptText = prompt.VoiceCheck(labTweet)
	case "parallel":
		if labParallel == "" {
			return fmt.Errorf("--parallel is required for --test parallel")
		}
		promptText = prompt.ParallelCheck(labTweet, labParallel)
	case "full":
		promptText = prompt.FullValidation(labTweet)
	default:
		return fmt.Errorf("unknown test %q (want fact-check, voice, parallel, or full)", labTest)
	}

	if !labExecute {
		fmt.Fprintln(cmd.OutOrStdout(), promptText)
		return nil
	}

	text, err := runCompletion(cmd.Context(), promptText)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
