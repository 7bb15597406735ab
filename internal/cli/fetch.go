package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/genmeta/internal/fetch"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Fetch a metadata document from a media server and extract it",
	Long: `Fetch downloads the metadata document of one media item and prints its
generation record, like 'genmeta extract'.

The URL comes from --url, GENMETA_FETCH_URL or fetch.url in genmeta.yaml
and must contain {id}. Failed requests (5xx, connection errors) are retried.

Examples:
  genmeta fetch 42 --url 'http://localhost:8000/api/media/{id}/metadata'
  GENMETA_FETCH_URL='http://nas/api/media/{id}/metadata' genmeta fetch 42 --json`,
	Args: requireMediaID,
	RunE: runFetch,
}

var fetchFlags struct {
	url        string
	json       bool
	deepPrompt bool
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchFlags.url, "url", "", "Document URL template containing {id}")
	fetchCmd.Flags().BoolVar(&fetchFlags.json, "json", false, "Print the record as JSON")
	fetchCmd.Flags().BoolVar(&fetchFlags.deepPrompt, "deep-prompt", false, "Also search the raw document for a prompt")
}

func resetFetchFlags() {
	fetchFlags.url = ""
	fetchFlags.json = false
	fetchFlags.deepPrompt = false
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if fetchFlags.url != "" {
		cfg.Fetch.URL = fetchFlags.url
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cfg.Fetch.URL == "" {
		return fmt.Errorf("no fetch url: set --url, GENMETA_FETCH_URL or fetch.url: %w", genmeta.ErrInvalidConfig)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	timeout, err := cfg.Fetch.TimeoutDuration()
	if err != nil {
		return fmt.Errorf("fetch.timeout: %w: %w", genmeta.ErrInvalidConfig, err)
	}

	client, err := fetch.New(fetch.Options{
		URLTemplate: cfg.Fetch.URL,
		Timeout:     timeout,
		RetryMax:    cfg.Fetch.RetryMax,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	doc, err := client.Document(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	return printExtraction(cmd, cfg, logger, client.URL(args[0]), doc, fetchFlags.json, fetchFlags.deepPrompt)
}
