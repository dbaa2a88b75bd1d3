package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/draft"
	"github.com/faytuks/engine/internal/history"
	"github.com/faytuks/engine/internal/llm"
	"github.com/faytuks/engine/internal/pattern"
	"github.com/faytuks/engine/internal/prompt"
)

var (
	genTopic   string
	genPattern string
	genAuto    bool
	genEmotion string
	genHook    string
	genExecute bool
	genQueue   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single tweet prompt (or tweet, with --execute)",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genTopic, "topic", "", "Topic for the tweet")
	generateCmd.Flags().StringVar(&genPattern, "pattern", string(pattern.FireParallel), "Pattern to use")
	generateCmd.Flags().BoolVar(&genAuto, "auto", false, "Auto-detect best pattern from topic")
	generateCmd.Flags().StringVar(&genEmotion, "emotion", "", "Primary emotion (OUTRAGE/PRIDE/HOPE/IRONY/GRIEF/CONTEMPT)")
	generateCmd.Flags().StringVar(&genHook, "hook", "", "Hook type for the opener (auto-selected if empty)")
	generateCmd.Flags().BoolVar(&genExecute, "execute", false, "Call the generation API (default: print prompt only)")
	generateCmd.Flags().BoolVar(&genQueue, "queue", false, "Save result to the draft queue")
	generateCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	store, err := openKnowledge()
	if err != nil {
		return err
	}

	p := pattern.Pattern(genPattern)
	if genAuto {
		if best, ok := pattern.Best(genTopic); ok {
			p = best
			fmt.Fprintf(cmd.OutOrStdout(), "Auto-detected pattern: %s\n\n", p)
		}
	}
	if !pattern.Valid(p) {
		return fmt.Errorf("unknown pattern %q", p)
	}

	emotion := genEmotion
	if emotion == "" {
		emotion = pattern.Emotions(p)[0]
	}

	builder := prompt.New(store)
	promptText := builder.Tweet(genTopic, p, prompt.TweetOptions{
		Emotion: emotion,
		HookID:  genHook,
	})

	if !genExecute {
		fmt.Fprintln(cmd.OutOrStdout(), promptText)
		return nil
	}

	text, err := runCompletion(cmd.Context(), promptText)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if genQueue {
		return queueDraft(cmd, draft.Fields{
			English: text,
			Pattern: string(p),
			Sources: []string{"generate:" + genTopic},
		})
	}
	return nil
}

// runCompletion executes a prompt against the configured collaborator
// with the generation timeout applied.
func runCompletion(ctx context.Context, promptText string) (string, error) {
	completer, err := newCompleter()
	if err != nil {
		return "", err
	}

	if t := cfg.Generation.Timeout.Duration(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return completer.Complete(ctx, llm.Request{Prompt: promptText})
}

// queueDraft saves a generated result to the pending queue and records
// the generation in the shared history log.
func queueDraft(cmd *cobra.Command, f draft.Fields) error {
	drafts, err := openDrafts()
	if err != nil {
		return err
	}
	d, err := drafts.Create(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nQueued draft %s\n", d.ID)

	log, err := history.Load(cfg.Paths.HistoryFile)
	if err == nil {
		_, err = log.AddDraft(firstSource(f.Sources), "", nil)
	}
	if err != nil {
		slog.Warn("history update failed", "component", "cli", "error", err)
	}
	return nil
}

func firstSource(sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	return sources[0]
}
