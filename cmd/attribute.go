package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/linktrace/linktrace/internal/attribution"
	"github.com/linktrace/linktrace/internal/config"
	"github.com/linktrace/linktrace/internal/referrer"
)

var attributeCmd = &cobra.Command{
	Use:   "attribute",
	Short: "Run a full attribution attempt over both channels",
	Long: `Run one deferred deep-link attribution attempt: resolve the clipboard
against the configured allow-patterns and fetch the install-referrer
payload, then report the merged attribution context.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.LoadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}

		client, err := buildReferrerClient(settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		service := attribution.NewService(settings.Matching.Patterns, referrer.NewCached(client))
		service.Options = matcherOptions(settings)

		ctx, cancel := context.WithTimeout(context.Background(), settings.Referrer.FetchTimeout)
		defer cancel()

		event, err := service.Attribute(ctx)
		if err != nil {
			if code := referrer.CodeOf(err); code != "" {
				fmt.Fprintf(os.Stderr, "Referrer channel failed: %s\n", code)
			} else {
				fmt.Fprintf(os.Stderr, "Referrer channel failed: %v\n", err)
			}
		}

		fmt.Printf("event:  %s\n", event.ID)
		fmt.Printf("source: %s\n", event.Source)
		if event.Link != nil {
			fmt.Printf("link:   %s\n", event.Link.Raw())
		}

		params := event.Params()
		if len(params) > 0 {
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

		if event.Source == attribution.SourceNone {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(attributeCmd)
}
