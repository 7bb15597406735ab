package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/genmeta/internal/extract"
	"github.com/vvka-141/genmeta/internal/prompt"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <file|->",
	Short: "Print the positive prompt of one media file",
	Long: `Prompt extracts the generation record of a file and prints its positive
prompt.

With --deep the raw document is searched instead of the record, which
finds prompts in documents no extractor source recognizes.
With --tags the prompt is split on commas into lower-case tags, one per
line, with inner whitespace replaced by underscores.

Examples:
  genmeta prompt image.png
  genmeta prompt image.png --tags --unique`,
	Args: requireMediaPath,
	RunE: runPrompt,
}

var promptFlags struct {
	deep   bool
	tags   bool
	unique bool
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().BoolVar(&promptFlags.deep, "deep", false, "Search the raw document for the prompt")
	promptCmd.Flags().BoolVar(&promptFlags.tags, "tags", false, "Print the prompt as tags, one per line")
	promptCmd.Flags().BoolVar(&promptFlags.unique, "unique", false, "Drop repeated tags (with --tags)")
}

func resetPromptFlags() {
	promptFlags.deep = false
	promptFlags.tags = false
	promptFlags.unique = false
}

func runPrompt(cmd *cobra.Command, args []string) error {
	if promptFlags.unique && !promptFlags.tags {
		return fmt.Errorf("%w: --unique requires --tags", genmeta.ErrUsage)
	}

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

	var (
		text string
		ok   bool
	)
	if promptFlags.deep {
		text, ok = prompt.LocateDeep(doc)
	} else if rec, found := extract.NewExtractor(extract.WithLogger(logger)).Extract(args[0], doc); found {
		text, ok = prompt.Locate(rec)
	}
	if !ok {
		return fmt.Errorf("%s: no prompt: %w", args[0], genmeta.ErrNotFound)
	}

	if !promptFlags.tags {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	tags := prompt.Tags(text)
	if promptFlags.unique {
		tags = prompt.Dedupe(tags)
	}
	if len(tags) == 0 {
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tags, "\n"))
	return err
}
