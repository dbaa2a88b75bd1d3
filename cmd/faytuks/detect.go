package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/pattern"
)

var (
	detectText string
	detectJSON bool
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Auto-detect narrative patterns in text",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectText, "text", "", "News text to analyze")
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output in JSON format")
	detectCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	matches := pattern.Detect(detectText)

	if detectJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"text":    detectText,
			"matches": matches,
		})
	}

	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No patterns detected.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "PATTERN\tSCORE\tKEYWORDS")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", m.Pattern, m.Score, strings.Join(m.Keywords, ", "))
	}
	w.Flush()
	return nil
}
