package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/prompt"
)

var (
	validateTweet   string
	validateExecute bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run full validation on a tweet",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateTweet, "tweet", "", "Tweet to validate")
	validateCmd.Flags().BoolVar(&validateExecute, "execute", false, "Call the generation API")
	validateCmd.MarkFlagRequired("tweet")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	promptText := prompt.FullValidation(validateTweet)

	if !validateExecute {
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
