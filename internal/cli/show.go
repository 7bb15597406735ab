package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/genmeta/internal/config"
	"github.com/vvka-141/genmeta/internal/files/scanner"
	"github.com/vvka-141/genmeta/internal/render"
	"github.com/vvka-141/genmeta/internal/store"
	"github.com/vvka-141/genmeta/internal/tui"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

var showCmd = &cobra.Command{
	Use:   "show <media-id|path>",
	Short: "Print a stored generation record",
	Long: `Show reads one record from the PostgreSQL store filled by 'genmeta scan --store'.

The argument is a media id (UUID) or the path the scanner reported for the
file, relative to the scanned directory. With --duplicates the other stored
files whose record is identical are listed too.

Exits with code 4 when the record is not stored.

Examples:
  genmeta show ./portraits/cat.png
  genmeta show 6f1c2a4e-0d1b-5a8e-9c55-4f4b2d1e7a10 --json
  genmeta show ./cat.png --duplicates`,
	Args: requireArg("media-id|path", "./cat.png"),
	RunE: runShow,
}

var showFlags struct {
	json       bool
	duplicates bool
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showFlags.json, "json", false, "Print the entry as JSON")
	showCmd.Flags().BoolVar(&showFlags.duplicates, "duplicates", false, "Also list stored files with an identical record")
}

func resetShowFlags() {
	showFlags.json = false
	showFlags.duplicates = false
}

// showEntry is the JSON shape of one stored entry.
type showEntry struct {
	ID          string         `json:"id"`
	Path        string         `json:"path"`
	Checksum    string         `json:"checksum"`
	Source      string         `json:"source"`
	Prompt      string         `json:"prompt,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Fingerprint string         `json:"fingerprint"`
	ExtractedAt time.Time      `json:"extracted_at"`
	Record      genmeta.Record `json:"record"`
	Duplicates  []showEntry    `json:"duplicates,omitempty"`
}

func newShowEntry(e store.Entry) showEntry {
	return showEntry{
		ID:          e.ID.String(),
		Path:        e.Path,
		Checksum:    e.Checksum,
		Source:      e.Source,
		Prompt:      e.Prompt,
		Tags:        e.Tags,
		Fingerprint: e.Fingerprint,
		ExtractedAt: e.ExtractedAt,
		Record:      e.Record,
	}
}

// mediaIDFromArg accepts a media id or a scanner path.
func mediaIDFromArg(arg string) uuid.UUID {
	if id, err := uuid.Parse(arg); err == nil {
		return id
	}
	return scanner.MediaID(arg)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	id := mediaIDFromArg(args[0])
	logger.Verbose("looking up media %s in %s", id, st.Table())
	entry, err := st.Get(ctx, id)
	if err != nil {
		return err
	}

	out := newShowEntry(entry)
	if showFlags.duplicates {
		dups, err := st.Duplicates(ctx, id)
		if err != nil {
			return err
		}
		for _, d := range dups {
			out.Duplicates = append(out.Duplicates, newShowEntry(d))
		}
	}

	w := cmd.OutOrStdout()
	if showFlags.json || cfg.Output.Format == config.FormatJSON {
		return writeJSON(w, out)
	}
	return printShowText(w, newRenderer(cmd), out)
}

func printShowText(w io.Writer, r *render.Renderer, e showEntry) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", r.Title(e.Path), e.Source); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, r.Record(e.Record)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nid %s, extracted %s\n", e.ID, e.ExtractedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	if !showFlags.duplicates {
		return nil
	}
	if len(e.Duplicates) == 0 {
		_, err := fmt.Fprintln(w, "No duplicates stored.")
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", r.Title("Duplicates:")); err != nil {
		return err
	}
	for _, d := range e.Duplicates {
		if _, err := fmt.Fprintf(w, "  %s %s\n", tui.SymbolBullet, d.Path); err != nil {
			return err
		}
	}
	return nil
}
