package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/genmeta/internal/config"
	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/internal/files/filesystem"
	"github.com/vvka-141/genmeta/internal/logging"
	"github.com/vvka-141/genmeta/internal/media"
	"github.com/vvka-141/genmeta/internal/render"
	"github.com/vvka-141/genmeta/internal/tui"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// stdinPath selects standard input as the document source.
const stdinPath = "-"

// loadConfig loads .env and genmeta.yaml from the --config-dir directory,
// applies environment overrides and validates the result. A missing
// genmeta.yaml is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir := getStringFlag(cmd, "config-dir")
	if dir == "" {
		dir = "."
	}
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, genmeta.ErrInvalidConfig, err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if format := getStringFlag(cmd, "log-format"); format != "" {
		cfg.Log.Format = format
	}
	if getVerboseFlag(cmd) {
		cfg.Log.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (genmeta.Logger, error) {
	return logging.New(cfg.Log.Format, cmd.ErrOrStderr(), cfg.Log.Verbose)
}

// newRenderer enables colours only when writing to an interactive terminal.
func newRenderer(cmd *cobra.Command) *render.Renderer {
	return render.New(cmd.OutOrStdout() == os.Stdout && tui.IsInteractive())
}

// mediaItemForFile describes a single file given on the command line,
// including its .json/.txt sidecars.
func mediaItemForFile(path string) (genmeta.MediaItem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return genmeta.MediaItem{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return genmeta.MediaItem{}, fmt.Errorf("%s is a directory, use 'genmeta scan': %w", path, genmeta.ErrUsage)
	}

	ext := strings.ToLower(filepath.Ext(path))
	item := genmeta.MediaItem{
		Path:       path,
		AbsPath:    path,
		Extension:  ext,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	}
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, sidecarExt := range []string{".json", ".txt"} {
		candidate := stem + sidecarExt
		if candidate == path {
			continue
		}
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			item.Sidecars = append(item.Sidecars, candidate)
		}
	}
	return item, nil
}

// readDocument loads the raw document for path, or from stdin when path
// is "-". Stdin holding a JSON object is decoded as such; anything else is
// treated as a parameter block.
func readDocument(cmd *cobra.Command, path string) (map[string]any, error) {
	if path == stdinPath {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), genmeta.MaxDocumentSize+1))
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if len(data) > genmeta.MaxDocumentSize {
			return nil, errors.New("stdin exceeds the document size limit")
		}
		if doc, err := document.Decode(data); err == nil {
			return doc, nil
		}
		return media.Decode(".txt", strings.NewReader(string(data)))
	}

	item, err := mediaItemForFile(path)
	if err != nil {
		return nil, err
	}
	return media.NewReader(filesystem.NewOSFileSystem()).Read(item)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
