// Package tui renders pipeline progress for a single podcast in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nguyentantai21042004/podsnap/internal/export"
	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/processor"
)

const pollInterval = 250 * time.Millisecond

var steps = []struct {
	stage model.Stage
	name  string
}{
	{model.StageExtracting, "Extract"},
	{model.StageTranscribing, "Transcribe"},
	{model.StageSummarizing, "Summarize"},
	{model.StageSynthesizing, "Narrate"},
}

// Model is the bubbletea model for one pipeline run.
type Model struct {
	proc   processor.Processor
	done   <-chan error
	outDir string

	keys     keyMap
	spinner  spinner.Model
	viewport viewport.Model

	session  model.Session
	finished bool
	err      error

	exported  []string
	exportErr error

	width  int
	height int
}

// New creates a Model that follows the run started on proc. done is the
// channel returned by Submit.
func New(proc processor.Processor, done <-chan error, outDir string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = currentStepStyle

	return Model{
		proc:     proc,
		done:     done,
		outDir:   outDir,
		keys:     defaultKeyMap(),
		spinner:  sp,
		viewport: viewport.New(80, 12),
		session:  proc.Snapshot(),
	}
}

// Err returns the run's error once it has finished.
func (m Model) Err() error {
	return m.err
}

// Finished reports whether the run has ended.
func (m Model) Finished() bool {
	return m.finished
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, pollCmd(), waitCmd(m.done))
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func waitCmd(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return DoneMsg{Err: <-done}
	}
}

func exportCmd(s model.Session, outDir string) tea.Cmd {
	return func() tea.Msg {
		paths, err := export.Session(s, outDir)
		return ExportedMsg{Paths: paths, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-12, 5)
		return m, nil

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollMsg:
		if m.finished {
			return m, nil
		}
		m.session = m.proc.Snapshot()
		return m, pollCmd()

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		m.session = m.proc.Snapshot()
		if m.err != nil {
			return m, nil
		}
		m.viewport.SetContent(m.session.Summary)
		return m, exportCmd(m.session, m.outDir)

	case ExportedMsg:
		m.exported = msg.Paths
		m.exportErr = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PodSnap"))
	if m.session.Title != "" {
		b.WriteString(statusStyle.Render("  " + m.session.Title))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderSteps())
	b.WriteString("\n\n")

	for _, err := range m.session.Errors {
		headline, detail := model.Describe(err)
		b.WriteString(errorStyle.Render(headline))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(detail))
		b.WriteString("\n")
	}
	for _, w := range m.session.Warnings {
		headline, detail := model.Describe(w)
		b.WriteString(warningStyle.Render(headline + " " + detail))
		b.WriteString("\n")
	}

	switch {
	case !m.finished && m.session.Stage.Running():
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.session.Stage.Label())
		b.WriteString("\n")
	case !m.finished:
		b.WriteString(statusStyle.Render("Finishing up..."))
		b.WriteString("\n")
	case m.err == nil:
		b.WriteString(doneStepStyle.Render(m.session.Stage.Label()))
		if m.session.Mood != "" {
			b.WriteString(statusStyle.Render(fmt.Sprintf("  mood: %s", m.session.Mood)))
		}
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render(m.viewport.View()))
		b.WriteString("\n")
		b.WriteString(m.renderExport())
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc))
	return b.String()
}

func (m Model) renderSteps() string {
	current := m.session.Stage.Step()
	parts := make([]string, 0, len(steps))
	for i, s := range steps {
		n := i + 1
		switch {
		case m.finished && m.err == nil, n < current:
			parts = append(parts, doneStepStyle.Render("✓ "+s.name))
		case n == current && !m.finished:
			parts = append(parts, currentStepStyle.Render("● "+s.name))
		default:
			parts = append(parts, pendingStepStyle.Render("○ "+s.name))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderExport() string {
	switch {
	case m.exportErr != nil:
		return errorStyle.Render("Export failed: "+m.exportErr.Error()) + "\n"
	case len(m.exported) > 0:
		return statusStyle.Render("Saved "+strings.Join(m.exported, ", ")) + "\n"
	default:
		return statusStyle.Render("Saving...") + "\n"
	}
}
