package cli

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/genmeta/internal/config"
)

const sampleParameters = "a cat, on a mat, a cat\nNegative prompt: blurry\nSteps: 20, Sampler: Euler a, CFG scale: 7, Seed: 42"

// isolate clears environment overrides and runs the test from an empty
// directory so no genmeta.yaml or .env leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	for _, env := range []string{config.EnvDatabaseURL, config.EnvFetchURL, config.EnvConcurrency} {
		t.Setenv(env, "")
	}
	t.Setenv("GENMETA_NON_INTERACTIVE", "1")
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// capture redirects the command's stdout and stderr into buffers.
func capture(t *testing.T, cmd *cobra.Command) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
		cmd.SetIn(nil)
	})
	return &out, &errOut
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

// blankPNG returns a valid PNG without text chunks.
func blankPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}
