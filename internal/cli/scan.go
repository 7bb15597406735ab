package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/genmeta/internal/batch"
	"github.com/vvka-141/genmeta/internal/checksum"
	"github.com/vvka-141/genmeta/internal/config"
	"github.com/vvka-141/genmeta/internal/extract"
	"github.com/vvka-141/genmeta/internal/files/filesystem"
	"github.com/vvka-141/genmeta/internal/files/scanner"
	"github.com/vvka-141/genmeta/internal/media"
	"github.com/vvka-141/genmeta/internal/store"
	"github.com/vvka-141/genmeta/internal/tui"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Extract generation records from every media file in a directory",
	Long: `Scan walks a directory (hidden directories are skipped), extracts the
generation record of every supported media file and prints a summary.

With --json one JSON object per media file is printed instead, in path
order. With --store the records are upserted into PostgreSQL
(GENMETA_DATABASE_URL or store.database_url); --new-only then skips files
whose checksum is already stored.

Examples:
  genmeta scan ./outputs
  genmeta scan ./outputs --json | jq -r 'select(.prompt) | .prompt'
  genmeta scan ./outputs --store --new-only --concurrency 8`,
	Args: requireDirectory,
	RunE: runScan,
}

var scanFlags struct {
	json        bool
	concurrency int
	store       bool
	newOnly     bool
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanFlags.json, "json", false, "Print one JSON object per media file")
	scanCmd.Flags().IntVar(&scanFlags.concurrency, "concurrency", 0,
		fmt.Sprintf("Files extracted in parallel, 1-%d (default from genmeta.yaml)", genmeta.MaxConcurrency))
	scanCmd.Flags().BoolVar(&scanFlags.store, "store", false, "Upsert records into PostgreSQL")
	scanCmd.Flags().BoolVar(&scanFlags.newOnly, "new-only", false, "Skip files already in the store (with --store)")
}

func resetScanFlags() {
	scanFlags.json = false
	scanFlags.concurrency = 0
	scanFlags.store = false
	scanFlags.newOnly = false
}

// scanLine is the JSON shape of one scanned media file.
type scanLine struct {
	ID       string         `json:"id"`
	Path     string         `json:"path"`
	Checksum string         `json:"checksum"`
	Source   string         `json:"source,omitempty"`
	Prompt   string         `json:"prompt,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Record   genmeta.Record `json:"record,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanFlags.newOnly && !scanFlags.store {
		return fmt.Errorf("%w: --new-only requires --store", genmeta.ErrUsage)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if scanFlags.concurrency != 0 {
		cfg.Scan.Concurrency = scanFlags.concurrency
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	var st *store.Store
	if scanFlags.store {
		st, err = openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	opts := []scanner.Option{
		scanner.WithExtensions(cfg.Scan.ExtensionSet()),
		scanner.WithSidecars(cfg.Scan.Sidecars),
	}
	if scanFlags.newOnly {
		known, err := st.KnownChecksums(ctx)
		if err != nil {
			return err
		}
		logger.Verbose("skipping %d already stored checksums", len(known))
		opts = append(opts, scanner.WithSkip(func(sum string) bool { return known[sum] }))
	}

	scan, err := scanner.NewScanner(checksum.New(), opts...).ScanDirectory(args[0])
	if err != nil {
		return err
	}
	logger.Verbose("found %d media files in %s", len(scan.Items), scan.Root)

	results, err := extractAll(ctx, cmd, cfg, logger, scan.Items)
	if err != nil {
		return err
	}

	if scanFlags.json {
		if err := printScanJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else if err := printScanSummary(cmd.OutOrStdout(), scan.Root, results, logger); err != nil {
		return err
	}

	if st != nil {
		n, err := st.Save(ctx, results)
		if err != nil {
			return err
		}
		total, err := st.Count(ctx)
		if err != nil {
			return err
		}
		logger.Info("saved %d records to %s (%d stored)", n, st.Table(), total)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger genmeta.Logger) (*store.Store, error) {
	if cfg.Store.DatabaseURL == "" {
		return nil, fmt.Errorf("the record store needs a database: set %s or store.database_url: %w",
			config.EnvDatabaseURL, genmeta.ErrInvalidConfig)
	}
	st, err := store.Open(ctx, cfg.Store.DatabaseURL, store.WithTable(cfg.Store.Table), store.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// extractAll runs the extraction pipeline over items, drawing the progress
// view when a human is watching.
func extractAll(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger genmeta.Logger, items []genmeta.MediaItem) ([]genmeta.Result, error) {
	reader := media.NewReader(filesystem.NewOSFileSystem())
	fn := batch.ExtractFunc(reader.Read, extract.NewExtractor(extract.WithLogger(logger)))

	if scanFlags.json || !tui.IsInteractive() || len(items) == 0 {
		runner, err := batch.NewRunner(cfg.Scan.Concurrency)
		if err != nil {
			return nil, err
		}
		return runner.Run(ctx, items, fn)
	}

	var results []genmeta.Result
	err := tui.RunWithProgress(ctx, "Scanning", len(items), func(ctx context.Context, progress batch.ProgressFunc) error {
		runner, err := batch.NewRunner(cfg.Scan.Concurrency, batch.WithProgress(progress))
		if err != nil {
			return err
		}
		results, err = runner.Run(ctx, items, fn)
		return err
	})
	return results, err
}

func printScanJSON(w io.Writer, results []genmeta.Result) error {
	for _, r := range results {
		line := scanLine{
			ID:       r.Item.ID.String(),
			Path:     r.Item.Path,
			Checksum: r.Item.Checksum,
			Source:   r.Source,
			Prompt:   r.Prompt,
			Tags:     r.Tags,
			Record:   r.Record,
		}
		if r.Err != nil {
			line.Error = r.Err.Error()
		}
		if err := writeJSON(w, line); err != nil {
			return err
		}
	}
	return nil
}

func printScanSummary(w io.Writer, root string, results []genmeta.Result, logger genmeta.Logger) error {
	var found, missing, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			logger.Error("%s: %v", r.Item.Path, r.Err)
		case r.Found():
			found++
			if _, err := fmt.Fprintf(w, "%s %s (%s)\n", tui.SymbolCheck, r.Item.Path, r.Source); err != nil {
				return err
			}
		default:
			missing++
			logger.Verbose("%s: no generation metadata", r.Item.Path)
		}
	}
	_, err := fmt.Fprintf(w, "Scanned %d media files in %s: %d with metadata, %d without, %d failed\n",
		len(results), root, found, missing, failed)
	return err
}
