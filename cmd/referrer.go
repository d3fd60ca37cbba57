package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/linktrace/linktrace/internal/config"
	"github.com/linktrace/linktrace/internal/referrer"
	"github.com/linktrace/linktrace/internal/referrer/store"
)

var referrerCmd = &cobra.Command{
	Use:   "referrer",
	Short: "Fetch the install-referrer payload",
	Long: `Fetch the install-referrer payload from the configured source. The first
successful fetch is cached for the process and, when persist_cache is
enabled, saved to disk for later runs.`,
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

		ctx, cancel := context.WithTimeout(context.Background(), settings.Referrer.FetchTimeout)
		defer cancel()

		payload, err := referrer.NewCached(client).Fetch(ctx)
		if err != nil {
			if code := referrer.CodeOf(err); code != "" {
				fmt.Fprintf(os.Stderr, "Referrer error: %s\n", code)
			} else {
				fmt.Fprintf(os.Stderr, "Referrer error: %v\n", err)
			}
			os.Exit(1)
		}

		printPayload(payload)
	},
}

// buildReferrerClient assembles the referrer client chain from settings:
// source client, optional disk persistence.
func buildReferrerClient(settings *config.Settings) (referrer.Client, error) {
	var client referrer.Client
	switch settings.Referrer.Source {
	case "file":
		client = &referrer.FileClient{Path: settings.Referrer.PayloadFile}
	case "env":
		client = &referrer.EnvClient{}
	case "none":
		client = &referrer.StaticClient{Err: &referrer.Error{Code: referrer.CodeFeatureNotSupported}}
	default:
		return nil, fmt.Errorf("unknown referrer source %q", settings.Referrer.Source)
	}

	if settings.Referrer.PersistCache {
		if err := config.EnsureDirs(); err != nil {
			return nil, err
		}
		store.Configure(filepath.Join(config.GetStateDir(), "referrer.db"))
		client = &store.Persistent{Client: client}
	}
	return client, nil
}

func printPayload(p *referrer.Payload) {
	fmt.Printf("install_referrer: %s\n", p.InstallReferrer)
	if p.ClickAt != 0 {
		fmt.Printf("click_at:         %d\n", p.ClickAt)
	}
	if p.InstallBeganAt != 0 {
		fmt.Printf("install_began_at: %d\n", p.InstallBeganAt)
	}

	params := p.Params()
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
	rootCmd.AddCommand(referrerCmd)
}
