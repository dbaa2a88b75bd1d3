package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/config"
	"github.com/faytuks/engine/internal/draft"
	"github.com/faytuks/engine/internal/knowledge"
	"github.com/faytuks/engine/internal/llm"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "faytuks",
	Short:         "Faytuks tweet synthesis engine",
	Long:          "Pattern-driven tweet synthesis: detect narrative patterns in news, build grounded generation prompts, and manage the draft queue.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFromFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		initLogger(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default: config/faytuks.yaml, FAYTUKS_CONFIG_PATH)")
}

func initLogger(lc config.LogConfig) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(lc.Level)}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openKnowledge loads the knowledge base from the configured directory.
func openKnowledge() (*knowledge.Store, error) {
	return knowledge.Load(cfg.Paths.KnowledgeDir)
}

// openDrafts opens the draft queue at the configured directory.
func openDrafts() (*draft.Store, error) {
	return draft.NewStore(cfg.Paths.DraftsDir)
}

// newCompleter builds the configured generation collaborator. It fails
// when the provider's API key is not set.
func newCompleter() (llm.Completer, error) {
	if cfg.Generation.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", cfg.Generation.Provider)
	}
	return llm.New(cfg.Generation.Provider, cfg.Generation.APIKey, cfg.Generation.Model, cfg.Generation.MaxTokens)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
