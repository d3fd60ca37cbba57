package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/linktrace/linktrace/internal/clipboard"
	"github.com/linktrace/linktrace/internal/config"
	"github.com/linktrace/linktrace/internal/deeplink"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [text]",
	Short: "Resolve text against the configured allow-patterns",
	Long: `Resolve the given text (or the current clipboard content when no text is
given) against the configured allow-patterns. On a match, prints the parsed
URI and extracted parameters. Exits 1 when nothing matches.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.LoadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}

		text := ""
		if len(args) > 0 {
			text = args[0]
		} else {
			text = clipboard.ReadText()
			if text == "" {
				fmt.Fprintln(os.Stderr, "Clipboard is empty or unreadable.")
				os.Exit(1)
			}
		}

		match := deeplink.ResolveWith(text, settings.Matching.Patterns, matcherOptions(settings))
		if match == nil {
			fmt.Fprintln(os.Stderr, "No pattern matched.")
			os.Exit(1)
		}

		printMatch(match)
	},
}

func printMatch(match *deeplink.Match) {
	uri := match.URI()
	fmt.Printf("raw:    %s\n", match.Raw())
	fmt.Printf("scheme: %s\n", uri.Scheme)
	fmt.Printf("host:   %s\n", uri.Host)
	fmt.Printf("path:   %s\n", uri.NormalPath())

	params := match.Params()
	if len(params) == 0 {
		return
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("params:")
	for _, k := range keys {
		fmt.Printf("  %s = %s\n", k, params[k])
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
