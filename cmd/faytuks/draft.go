package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/draft"
)

var (
	draftListApproved bool
	draftListPosted   bool
	draftJSONOutput   bool

	draftSaveEnglish string
	draftSavePersian string
	draftSavePattern string
	draftSaveMedia   []string
	draftSaveTags    []string
)

var draftCmd = &cobra.Command{
	Use:     "draft",
	Aliases: []string{"queue"},
	Short:   "Manage the tweet draft queue",
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts (pending by default)",
	Args:  cobra.NoArgs,
	RunE:  runDraftList,
}

var draftPreviewCmd = &cobra.Command{
	Use:   "preview <id>",
	Short: "Show a draft in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftPreview,
}

var draftSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a new draft",
	Args:  cobra.NoArgs,
	RunE:  runDraftSave,
}

var draftAttachCmd = &cobra.Command{
	Use:   "attach <id> <media-path>",
	Short: "Attach a media reference to a draft",
	Args:  cobra.ExactArgs(2),
	RunE:  runDraftAttach,
}

var draftApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftApprove,
}

var draftRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Delete a pending or approved draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftReject,
}

var draftStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show queue statistics",
	Args:  cobra.NoArgs,
	RunE:  runDraftStats,
}

func init() {
	draftListCmd.Flags().BoolVar(&draftListApproved, "approved", false, "List approved drafts")
	draftListCmd.Flags().BoolVar(&draftListPosted, "posted", false, "List posted drafts")
	draftListCmd.Flags().BoolVar(&draftJSONOutput, "json", false, "Output in JSON format")

	draftSaveCmd.Flags().StringVar(&draftSaveEnglish, "english", "", "English tweet text")
	draftSaveCmd.Flags().StringVar(&draftSavePersian, "persian", "", "Persian tweet text")
	draftSaveCmd.Flags().StringVar(&draftSavePattern, "pattern", "", "Synthesis pattern used")
	draftSaveCmd.Flags().StringSliceVar(&draftSaveMedia, "media", nil, "Media references to attach")
	draftSaveCmd.Flags().StringSliceVar(&draftSaveTags, "hashtags", nil, "Hashtags")
	draftSaveCmd.MarkFlagRequired("english")

	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftPreviewCmd)
	draftCmd.AddCommand(draftSaveCmd)
	draftCmd.AddCommand(draftAttachCmd)
	draftCmd.AddCommand(draftApproveCmd)
	draftCmd.AddCommand(draftRejectCmd)
	draftCmd.AddCommand(draftStatsCmd)
	rootCmd.AddCommand(draftCmd)
}

func runDraftList(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}

	var items []draft.Draft
	var label string
	switch {
	case draftListApproved:
		items, label = drafts.ListApproved(), "APPROVED"
	case draftListPosted:
		items, label = drafts.ListPosted(), "POSTED"
	default:
		items, label = drafts.ListPending(), "PENDING"
	}

	if draftJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"drafts": items,
			"total":  len(items),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== %s DRAFTS (%d) ===\n\n", label, len(items))
	if len(items) == 0 {
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "ID\tCREATED\tPATTERN\tTEXT")
	for _, d := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(d.ID),
			d.CreatedAt.Format("2006-01-02 15:04"),
			d.Pattern,
			truncate(d.English, 60),
		)
	}
	w.Flush()
	return nil
}

func runDraftPreview(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	d, ok := drafts.Get(args[0])
	if !ok {
		return fmt.Errorf("draft %q not found", args[0])
	}
	return printJSON(cmd.OutOrStdout(), d)
}

func runDraftSave(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	d, err := drafts.Create(draft.Fields{
		English:  draftSaveEnglish,
		Persian:  draftSavePersian,
		Pattern:  draftSavePattern,
		Media:    draftSaveMedia,
		Hashtags: draftSaveTags,
		Sources:  []string{"manual"},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved draft %s\n", d.ID)
	return nil
}

func runDraftAttach(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	if !drafts.AttachMedia(args[0], args[1]) {
		return fmt.Errorf("no pending or approved draft matches %q", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Attached %s to %s\n", args[1], args[0])
	return nil
}

func runDraftApprove(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	if !drafts.Approve(args[0]) {
		return fmt.Errorf("no pending draft matches %q", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Approved %s\n", args[0])
	return nil
}

func runDraftReject(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	if !drafts.Reject(args[0]) {
		return fmt.Errorf("no pending or approved draft matches %q", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s\n", args[0])
	return nil
}

func runDraftStats(cmd *cobra.Command, args []string) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	counts := drafts.Stats()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== QUEUE STATS ===")
	w := newTabWriter(out)
	fmt.Fprintf(w, "Pending\t%d\n", counts.Pending)
	fmt.Fprintf(w, "Approved\t%d\n", counts.Approved)
	fmt.Fprintf(w, "Posted\t%d\n", counts.Posted)
	fmt.Fprintf(w, "Total\t%d\n", counts.Total())
	w.Flush()
	return nil
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
