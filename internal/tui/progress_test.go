package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/genmeta/internal/batch"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

func update(t *testing.T, m ProgressModel, msg tea.Msg) (ProgressModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(ProgressModel)
	require.True(t, ok)
	return pm, cmd
}

func TestProgressModel_Counts(t *testing.T) {
	m := NewProgressModel("Scanning", 3, nil)

	m, _ = update(t, m, ProgressMsg{Done: 1, Total: 3, Result: genmeta.Result{
		Item:   genmeta.MediaItem{Path: "./a.png"},
		Record: genmeta.Record{"prompt": "a cat"},
	}})
	m, _ = update(t, m, ProgressMsg{Done: 2, Total: 3, Result: genmeta.Result{
		Item: genmeta.MediaItem{Path: "./b.jpg"},
		Err:  genmeta.ErrUnsupportedMedia,
	}})
	m, _ = update(t, m, ProgressMsg{Done: 3, Total: 3, Result: genmeta.Result{
		Item: genmeta.MediaItem{Path: "./c.png"},
	}})

	assert.Equal(t, 1, m.found)
	assert.Equal(t, 1, m.failed)
	assert.Equal(t, 1, m.missing)
	assert.Contains(t, m.View(), "3/3")
	assert.Contains(t, m.View(), "./c.png")
	assert.Contains(t, m.Counts(), "found 1")
}

func TestProgressModel_QuitCancels(t *testing.T) {
	cancelled := 0
	m := NewProgressModel("Scanning", 1, func() { cancelled++ })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd, "view stays up until the work returns")
	assert.True(t, m.stopping)
	assert.Contains(t, m.View(), "stopping")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, 1, cancelled)
}

func TestProgressModel_Done(t *testing.T) {
	m := NewProgressModel("Scanning", 0, nil)

	m, cmd := update(t, m, DoneMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), SymbolCheck)

	m, _ = update(t, m, DoneMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")
}

func TestRunWithProgress(t *testing.T) {
	var out bytes.Buffer
	items := []genmeta.MediaItem{{Path: "./a.png"}, {Path: "./b.png"}}

	err := RunWithProgress(context.Background(), "Scanning", len(items),
		func(ctx context.Context, progress batch.ProgressFunc) error {
			for i, item := range items {
				progress(i+1, len(items), genmeta.Result{Item: item})
			}
			return nil
		},
		tea.WithInput(nil), tea.WithOutput(&out),
	)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "2/2")
}

func TestRunWithProgress_ReturnsWorkError(t *testing.T) {
	want := errors.New("scan failed")

	err := RunWithProgress(context.Background(), "Scanning", 0,
		func(context.Context, batch.ProgressFunc) error { return want },
		tea.WithInput(nil), tea.WithOutput(io.Discard),
	)

	assert.ErrorIs(t, err, want)
}
