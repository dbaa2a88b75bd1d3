package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/faytuks/engine/internal/knowledge"
	"github.com/faytuks/engine/internal/prompt"
)

var (
	memorialList    bool
	memorialRandom  bool
	memorialName    string
	memorialExecute bool
)

var memorialCmd = &cobra.Command{
	Use:   "memorial",
	Short: "Memorial tweets for verified victims",
	Args:  cobra.NoArgs,
	RunE:  runMemorial,
}

func init() {
	memorialCmd.Flags().BoolVar(&memorialList, "list", false, "List verified victims")
	memorialCmd.Flags().BoolVar(&memorialRandom, "random", false, "Pick a random verified victim")
	memorialCmd.Flags().StringVar(&memorialName, "name", "", "Find a victim by name")
	memorialCmd.Flags().BoolVar(&memorialExecute, "execute", false, "Call the generation API (default: print prompt only)")
	rootCmd.AddCommand(memorialCmd)
}

func runMemorial(cmd *cobra.Command, args []string) error {
	victims, err := knowledge.LoadVictims(filepath.Join(cfg.Paths.KnowledgeDir, knowledge.VictimsFile))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if memorialList {
		verified := victims.Verified()
		fmt.Fprintf(out, "=== VERIFIED VICTIMS (%d) ===\n", len(verified))
		for _, v := range verified {
			ageStr := ""
			if v.Age > 0 {
				ageStr = fmt.Sprintf(", %d", v.Age)
			}
			fmt.Fprintf(out, "\n  %s (%s)%s\n", v.Name, orDefault(v.PersianName, "N/A"), ageStr)
			fmt.Fprintf(out, "    %s - %s\n", v.City, v.DateOfDeath)
			fmt.Fprintf(out, "    %s\n", truncate(v.Circumstances, 80))
		}
		return nil
	}

	var (
		victim knowledge.Victim
		ok     bool
	)
	switch {
	case memorialRandom:
		if victim, ok = victims.Random(); !ok {
			return fmt.Errorf("no verified victims in database")
		}
	case memorialName != "":
		if victim, ok = victims.ByName(memorialName); !ok {
			return fmt.Errorf("no victim matches %q", memorialName)
		}
	default:
		return fmt.Errorf("use --list, --random, or --name")
	}

	fmt.Fprintf(out, "=== MEMORIAL: %s ===\n", victim.Name)
	fmt.Fprintf(out, "Persian: %s\n", orDefault(victim.PersianName, "N/A"))
	if victim.Age > 0 {
		fmt.Fprintf(out, "Age: %d\n", victim.Age)
	}
	fmt.Fprintf(out, "City: %s\nDate: %s\n", victim.City, victim.DateOfDeath)
	fmt.Fprintf(out, "Circumstances: %s\n", victim.Circumstances)

	promptText := prompt.Memorial(victim)
	if !memorialExecute {
		fmt.Fprintln(out, "\n=== MEMORIAL TWEET PROMPT ===")
		fmt.Fprintln(out, promptText)
		return nil
	}

	text, err := runCompletion(cmd.Context(), promptText)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n=== GENERATED MEMORIAL TWEET ===")
	fmt.Fprintln(out, text)
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
