package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// progressMsg reports trials completed so far out of the full run.
type progressMsg struct {
	completed, total int
}

// progressDoneMsg tells the program the run has finished and it should quit.
type progressDoneMsg struct{}

// progressModel is a minimal bubbletea view for -o/--progress-every: a
// single status line, replaced in place, showing how far the current
// simulation run has gotten. It takes over the terminal only when attached
// to a TTY; piped or redirected output falls back to the plain log lines
// logutil already writes.
type progressModel struct {
	completed, total int
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.completed, m.total = msg.completed, msg.total
		return m, nil
	case progressDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = 100 * float64(m.completed) / float64(m.total)
	}
	return fmt.Sprintf("simulating... %d/%d trials (%.1f%%)\n", m.completed, m.total, pct)
}

// attachProgress starts a bubbletea program on stdout when it is a TTY,
// returning a callback to feed it trial counts and a stop func to shut it
// down once the run finishes. When stdout is not a terminal it returns
// no-ops so callers can unconditionally defer stop().
func attachProgress(progressEvery int) (report func(completed, total int), stop func()) {
	if progressEvery <= 0 || !isatty.IsTerminal(os.Stdout.Fd()) {
		return func(int, int) {}, func() {}
	}

	p := tea.NewProgram(progressModel{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	return func(completed, total int) {
			p.Send(progressMsg{completed: completed, total: total})
		}, func() {
			p.Send(progressDoneMsg{})
			<-done
		}
}
