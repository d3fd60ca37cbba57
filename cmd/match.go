package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linktrace/linktrace/internal/deeplink"
)

var (
	flagNoWildcards bool
	flagStrictHost  bool
	flagSegments    bool
)

var matchCmd = &cobra.Command{
	Use:   "match <pattern> <text>",
	Short: "Test a single allow-pattern against text",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		pattern, text := args[0], args[1]

		matcher := deeplink.NewMatcher(deeplink.Options{
			Wildcards:          !flagNoWildcards,
			StrictHostBoundary: flagStrictHost,
			SegmentBoundary:    flagSegments,
		})

		if matcher.Matches(text, pattern) {
			fmt.Println("match")
			return
		}
		fmt.Println("no match")
		os.Exit(1)
	},
}

func init() {
	matchCmd.Flags().BoolVar(&flagNoWildcards, "no-wildcards", false, "Disable wildcard pattern support")
	matchCmd.Flags().BoolVar(&flagStrictHost, "strict-host", false, "Disable the loose normalized-prefix fast path")
	matchCmd.Flags().BoolVar(&flagSegments, "segments", false, "Require path prefixes to end on segment boundaries")
	rootCmd.AddCommand(matchCmd)
}
