package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linktrace/linktrace/internal/clipboard"
	"github.com/linktrace/linktrace/internal/config"
	"github.com/linktrace/linktrace/internal/deeplink"
	"github.com/linktrace/linktrace/internal/tui"
	"github.com/linktrace/linktrace/internal/utils"
	"github.com/linktrace/linktrace/internal/version"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	flagConfigDir string
	flagDebug     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linktrace",
	Short: "Deferred deep-link attribution from the terminal",
	Long: `linktrace recovers deferred deep-link context: it tests clipboard text
against configured allow-patterns and reads the install-referrer payload.
Without a subcommand it opens the interactive pattern lab.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagConfigDir != "" {
			config.SetConfigDir(flagConfigDir)
		}
		if flagDebug {
			logsDir := config.GetLogsDir()
			utils.ConfigureDebug(logsDir)
			if settings, err := config.LoadSettings(); err == nil {
				utils.PruneLogs(logsDir, settings.General.LogRetentionCount)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.LoadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}

		if !settings.General.SkipUpdateCheck {
			if info, _ := version.CheckForUpdate(Version); info != nil && info.UpdateAvailable {
				fmt.Printf("A newer version is available: %s (%s)\n", info.LatestVersion, info.ReleaseURL)
			}
		}

		initialText := ""
		if settings.General.ClipboardWatch {
			initialText = clipboard.ReadText()
		}

		opts := matcherOptions(settings)
		if err := tui.Run(settings.Matching.Patterns, opts, initialText, settings.General.Theme); err != nil {
			fmt.Fprintf(os.Stderr, "Error running pattern lab: %v\n", err)
			os.Exit(1)
		}
	},
}

func matcherOptions(settings *config.Settings) deeplink.Options {
	return deeplink.Options{
		Wildcards:          settings.Matching.Wildcards,
		StrictHostBoundary: settings.Matching.StrictHostBoundary,
		SegmentBoundary:    settings.Matching.SegmentBoundary,
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Override the configuration directory")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs")
}
