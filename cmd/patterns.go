package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linktrace/linktrace/internal/config"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage the configured allow-patterns",
	Run: func(cmd *cobra.Command, args []string) {
		listPatterns()
	},
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured allow-patterns",
	Run: func(cmd *cobra.Command, args []string) {
		listPatterns()
	},
}

var patternsAddCmd = &cobra.Command{
	Use:   "add <pattern>...",
	Short: "Add allow-patterns",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := mustLoadSettings()

		existing := make(map[string]bool, len(settings.Matching.Patterns))
		for _, p := range settings.Matching.Patterns {
			existing[p] = true
		}

		added := 0
		for _, p := range args {
			if p == "" || existing[p] {
				continue
			}
			settings.Matching.Patterns = append(settings.Matching.Patterns, p)
			existing[p] = true
			added++
		}

		mustSaveSettings(settings)
		fmt.Printf("Added %d patterns.\n", added)
	},
}

var patternsRmCmd = &cobra.Command{
	Use:   "rm <pattern>...",
	Short: "Remove allow-patterns",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := mustLoadSettings()

		remove := make(map[string]bool, len(args))
		for _, p := range args {
			remove[p] = true
		}

		kept := settings.Matching.Patterns[:0]
		removed := 0
		for _, p := range settings.Matching.Patterns {
			if remove[p] {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		settings.Matching.Patterns = kept

		mustSaveSettings(settings)
		fmt.Printf("Removed %d patterns.\n", removed)
	},
}

func listPatterns() {
	settings := mustLoadSettings()
	if len(settings.Matching.Patterns) == 0 {
		fmt.Println("No patterns configured.")
		return
	}
	for _, p := range settings.Matching.Patterns {
		fmt.Println(p)
	}
}

func mustLoadSettings() *config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	return settings
}

func mustSaveSettings(settings *config.Settings) {
	if err := config.SaveSettings(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	patternsCmd.AddCommand(patternsListCmd, patternsAddCmd, patternsRmCmd)
	rootCmd.AddCommand(patternsCmd)
}
