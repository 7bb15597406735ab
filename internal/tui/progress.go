package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// ProgressMsg reports one finished media item.
type ProgressMsg struct {
	Done   int
	Total  int
	Result genmeta.Result
}

// DoneMsg ends the progress view.
type DoneMsg struct {
	Err error
}

// ProgressModel shows a spinner with running counts while a scan runs.
type ProgressModel struct {
	spinner spinner.Model
	keys    KeyMap
	cancel  context.CancelFunc

	title   string
	total   int
	done    int
	found   int
	missing int
	failed  int
	current string

	stopping bool
	finished bool
	err      error
}

// NewProgressModel creates the model. cancel is called when the user
// presses the quit key.
func NewProgressModel(title string, total int, cancel context.CancelFunc) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ProgressModel{
		spinner: s,
		keys:    DefaultKeyMap(),
		cancel:  cancel,
		title:   title,
		total:   total,
	}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.stopping {
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case ProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.current = msg.Result.Item.Path
		switch {
		case msg.Result.Err != nil:
			m.failed++
		case msg.Result.Found():
			m.found++
		default:
			m.missing++
		}
		return m, nil

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	if m.finished {
		if m.err != nil {
			return ErrorStyle.Render(fmt.Sprintf("%s %s: %v", SymbolCross, m.title, m.err)) + "\n"
		}
		return SuccessStyle.Render(fmt.Sprintf("%s %s: %d/%d", SymbolCheck, m.title, m.done, m.total)) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s %d/%d", m.title, m.done, m.total)))
	if m.current != "" {
		b.WriteString(" ")
		b.WriteString(PathStyle.Render(m.current))
	}
	b.WriteString("\n")
	b.WriteString(m.Counts())
	if m.stopping {
		b.WriteString("\n" + WarningStyle.Render("stopping..."))
	} else {
		b.WriteString("\n" + HelpStyle.Render(m.keys.HelpText()))
	}
	return b.String() + "\n"
}

// Counts returns the running tally line.
func (m ProgressModel) Counts() string {
	return fmt.Sprintf("  found %d %s not found %d %s failed %d",
		m.found, SymbolBullet, m.missing, SymbolBullet, m.failed)
}
