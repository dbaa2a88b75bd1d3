package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/prompt"
)

var (
	annDate    string
	annContext string
	annExecute bool
)

var anniversaryCmd = &cobra.Command{
	Use:   "anniversary",
	Short: "Check historical anniversaries and build tweet prompts",
	Args:  cobra.NoArgs,
	RunE:  runAnniversary,
}

func init() {
	anniversaryCmd.Flags().StringVar(&annDate, "date", "", "Date to check (MM-DD, default: today)")
	anniversaryCmd.Flags().StringVar(&annContext, "context", "", "Current context to connect the anniversary to")
	anniversaryCmd.Flags().BoolVar(&annExecute, "execute", false, "Call the generation API")
	rootCmd.AddCommand(anniversaryCmd)
}

func runAnniversary(cmd *cobra.Command, args []string) error {
	month, day := time.Now().Month(), time.Now().Day()
	if annDate != "" {
		parsed, err := time.Parse("01-02", annDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: want MM-DD", annDate)
		}
		month, day = parsed.Month(), parsed.Day()
	}

	store, err := openKnowledge()
	if err != nil {
		return err
	}

	anns := store.AnniversariesFor(int(month), day)
	if len(anns) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No anniversaries for %02d-%02d.\n", month, day)
		return nil
	}

	builder := prompt.New(store)
	out := cmd.OutOrStdout()

	for i, ann := range anns {
		if i > 0 {
			fmt.Fprintln(out, strings.Repeat("-", 60))
		}
		fmt.Fprintf(out, "%s (%s): %s\n", ann.Date, ann.Year, ann.Event)
		if ann.Significance != "" {
			fmt.Fprintf(out, "  %s\n", ann.Significance)
		}
		fmt.Fprintln(out)

		promptText := builder.Anniversary(ann, annContext)
		if !annExecute {
			fmt.Fprintln(out, promptText)
			continue
		}

		text, err := runCompletion(cmd.Context(), promptText)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
	}
	return nil
}
