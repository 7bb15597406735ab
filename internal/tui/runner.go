package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/genmeta/internal/batch"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Work is a cancellable job that reports per-item progress.
type Work func(ctx context.Context, progress batch.ProgressFunc) error

// RunWithProgress runs work while the progress view is on screen and
// returns work's error. Pressing the quit key cancels the context passed
// to work; the view stays up until work returns.
func RunWithProgress(ctx context.Context, title string, total int, work Work, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(title, total, cancel), opts...)

	errCh := make(chan error, 1)
	go func() {
		err := work(ctx, func(done, total int, r genmeta.Result) {
			p.Send(ProgressMsg{Done: done, Total: total, Result: r})
		})
		errCh <- err
		p.Send(DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errCh
		return fmt.Errorf("progress view: %w", err)
	}
	return <-errCh
}
