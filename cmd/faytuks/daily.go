package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/prompt"
)

var (
	dailyDate         string
	dailyDevelopments []string
	dailyPrevious     string
	dailyExecute      bool
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Generate the four-tweet daily package prompt",
	Args:  cobra.NoArgs,
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "Date (YYYY-MM-DD)")
	dailyCmd.Flags().StringSliceVar(&dailyDevelopments, "developments", nil, "Overnight developments")
	dailyCmd.Flags().StringVar(&dailyPrevious, "previous", "", "Previous day's focus")
	dailyCmd.Flags().BoolVar(&dailyExecute, "execute", false, "Call the generation API")
	dailyCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	date, err := time.Parse("2006-01-02", dailyDate)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", dailyDate)
	}

	store, err := openKnowledge()
	if err != nil {
		return err
	}

	promptText := prompt.New(store).Daily(date, dailyDevelopments, dailyPrevious)

	if !dailyExecute {
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
