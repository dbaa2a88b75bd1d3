package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sourceJSON bool

var sourceCmd = &cobra.Command{
	Use:   "source <name>",
	Short: "Check source credibility",
	Args:  cobra.ExactArgs(1),
	RunE:  runSource,
}

func init() {
	sourceCmd.Flags().BoolVar(&sourceJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, args []string) error {
	store, err := openKnowledge()
	if err != nil {
		return err
	}

	src, ok := store.SourceTier(args[0])
	if !ok {
		return fmt.Errorf("source %q not tracked", args[0])
	}

	if sourceJSON {
		return printJSON(cmd.OutOrStdout(), src)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s — tier %d (%s)\n", src.Name, src.Tier, src.Category)
	if src.Twitter != "" {
		fmt.Fprintf(out, "Twitter: %s\n", src.Twitter)
	}
	if src.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", src.Notes)
	}
	if len(src.Strengths) > 0 {
		fmt.Fprintf(out, "Strengths: %s\n", strings.Join(src.Strengths, ", "))
	}
	return nil
}
