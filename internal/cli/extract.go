package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/genmeta/internal/config"
	"github.com/vvka-141/genmeta/internal/extract"
	"github.com/vvka-141/genmeta/internal/prompt"
	"github.com/vvka-141/genmeta/internal/render"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file|->",
	Short: "Print the generation record of one media file",
	Long: `Extract reads one media file (or a JSON/text document from stdin when the
argument is "-") and prints its normalized generation record.

Sources are tried in order: ComfyUI workflow graph, parameter blocks
("parameters", "Parameters", "prompt") and SwarmUI "sui_image_params".
PNG text chunks are read directly; other media use a .json or .txt
sidecar with the same base name.

Exits with code 4 when no generation metadata is recognized.

Examples:
  genmeta extract image.png
  genmeta extract image.png --json
  exiftool -j image.webp | jq '.[0]' | genmeta extract -`,
	Args: requireMediaPath,
	RunE: runExtract,
}

var extractFlags struct {
	json       bool
	deepPrompt bool
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractFlags.json, "json", false, "Print the record as JSON")
	extractCmd.Flags().BoolVar(&extractFlags.deepPrompt, "deep-prompt", false, "Also search the raw document for a prompt")
}

func resetExtractFlags() {
	extractFlags.json = false
	extractFlags.deepPrompt = false
}

// extractOutput is the JSON shape printed by extract and fetch.
type extractOutput struct {
	Source     string         `json:"source"`
	Record     genmeta.Record `json:"record"`
	DeepPrompt string         `json:"deep_prompt,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	return printExtraction(cmd, cfg, logger, args[0], doc, extractFlags.json, extractFlags.deepPrompt)
}

// printExtraction runs the extractor over doc and prints the outcome.
func printExtraction(cmd *cobra.Command, cfg *config.Config, logger genmeta.Logger, label string, doc map[string]any, asJSON, deep bool) error {
	ex := extract.NewExtractor(extract.WithLogger(logger))
	rec, source, ok := ex.Match(label, doc)
	if !ok {
		return fmt.Errorf("%s: %w", label, genmeta.ErrNotFound)
	}

	out := extractOutput{Source: source, Record: rec}
	if deep {
		out.DeepPrompt, _ = prompt.LocateDeep(doc)
	}

	w := cmd.OutOrStdout()
	if asJSON || cfg.Output.Format == config.FormatJSON {
		return writeJSON(w, out)
	}
	return printRecordText(w, newRenderer(cmd), label, out)
}

func printRecordText(w io.Writer, r *render.Renderer, label string, out extractOutput) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", r.Title(label), out.Source); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, r.Record(out.Record)); err != nil {
		return err
	}
	if out.DeepPrompt != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", r.Title("Deep prompt:"), out.DeepPrompt); err != nil {
			return err
		}
	}
	return nil
}
