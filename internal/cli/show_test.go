package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/genmeta/internal/config"
	"github.com/vvka-141/genmeta/internal/files/scanner"
	"github.com/vvka-141/genmeta/internal/testinfra"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

func TestMediaIDFromArg(t *testing.T) {
	id := scanner.MediaID("./cat.png")

	assert.Equal(t, id, mediaIDFromArg(id.String()))
	assert.Equal(t, id, mediaIDFromArg("./cat.png"))
	assert.Equal(t, id, mediaIDFromArg("Cat.PNG"))
}

func TestShowCmd_RequiresDatabase(t *testing.T) {
	isolate(t)
	resetShowFlags()
	capture(t, showCmd)

	err := runShow(showCmd, []string{"./cat.png"})
	assert.Equal(t, genmeta.ExitConfigError, genmeta.ExitCodeForError(err), "err: %v", err)
}

func TestShowCmd_MissingArgument(t *testing.T) {
	err := showCmd.Args(showCmd, nil)
	assert.ErrorIs(t, err, genmeta.ErrUsage)
}

// storedMediaDir scans a directory with two identical generations and one
// distinct one into a fresh database.
func storedMediaDir(t *testing.T) {
	t.Helper()
	ctr := testinfra.PostgresForTest(t)
	dir := isolate(t)
	t.Setenv(config.EnvDatabaseURL, ctr.ConnString)

	writeFile(t, dir, "media/x.jpg", []byte("x bytes"))
	writeFile(t, dir, "media/x.txt", []byte(sampleParameters))
	writeFile(t, dir, "media/y.jpg", []byte("y bytes"))
	writeFile(t, dir, "media/y.txt", []byte(sampleParameters))
	writeFile(t, dir, "media/z.jpg", []byte("z bytes"))
	writeFile(t, dir, "media/z.txt", []byte("a dog\nSteps: 30"))

	resetScanFlags()
	scanFlags.store = true
	_, errOut := capture(t, scanCmd)
	require.NoError(t, runScan(scanCmd, []string{dir + "/media"}))
	assert.Contains(t, errOut.String(), "(3 stored)")
}

func TestShowCmd_StoredEntry(t *testing.T) {
	storedMediaDir(t)
	resetShowFlags()
	showFlags.json = true
	showFlags.duplicates = true
	out, _ := capture(t, showCmd)

	require.NoError(t, runShow(showCmd, []string{"./x.jpg"}))

	var got showEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, scanner.MediaID("./x.jpg").String(), got.ID)
	assert.Equal(t, "./x.jpg", got.Path)
	assert.Equal(t, "parameters", got.Source)
	assert.Equal(t, "a cat, on a mat, a cat", got.Prompt)
	require.Len(t, got.Duplicates, 1)
	assert.Equal(t, "./y.jpg", got.Duplicates[0].Path)
	assert.Equal(t, got.Fingerprint, got.Duplicates[0].Fingerprint)
}

func TestShowCmd_Text(t *testing.T) {
	storedMediaDir(t)
	resetShowFlags()
	showFlags.duplicates = true
	out, _ := capture(t, showCmd)

	require.NoError(t, runShow(showCmd, []string{"./z.jpg"}))

	text := out.String()
	assert.Contains(t, text, "./z.jpg (parameters)")
	assert.Contains(t, text, "a dog")
	assert.Contains(t, text, "No duplicates stored.")
}

func TestShowCmd_NotStored(t *testing.T) {
	storedMediaDir(t)
	resetShowFlags()
	capture(t, showCmd)

	err := runShow(showCmd, []string{"./missing.jpg"})
	assert.Equal(t, genmeta.ExitNotFound, genmeta.ExitCodeForError(err), "err: %v", err)
}
