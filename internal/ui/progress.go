// Package ui renders live scan progress in the terminal.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lintnames/internal/pipeline"
)

// window is how many recently finished files stay on screen.
const window = 8

type progressModel struct {
	title      string
	events     <-chan pipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	recent     []fileItem
	done       int
	total      int
	failed     int
	cached     int
	stageLabel string
	width      int
	finished   bool
}

type fileItem struct {
	path   string
	status string
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders pipeline progress.
func NewProgressModel(title string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

// Run shows the progress view on out until events is closed.
func Run(ctx context.Context, title string, events <-chan pipeline.Event, out io.Writer) error {
	p := tea.NewProgram(NewProgressModel(title, events),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	_, err := p.Run()
	return err
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(pipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.finished {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-12-4, 20)
	for _, item := range m.recent {
		status := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}
	if len(m.recent) > 0 {
		b.WriteString("\n")
	}

	if m.finished {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	fmt.Fprintf(&b, "\n  %d/%d files", m.done, m.total)
	if m.cached > 0 {
		fmt.Fprintf(&b, ", %d cached", m.cached)
	}
	if m.failed > 0 {
		fmt.Fprintf(&b, ", %s", styleStatus("error").Render(fmt.Sprintf("%d failed", m.failed)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	if ev.File == "" {
		if label := stageLabel(ev.Stage, ev.Status); label != "" {
			m.stageLabel = label
		}
		return nil
	}

	status := "done"
	switch {
	case ev.Status == pipeline.StatusError:
		status = "error"
		m.failed++
	case ev.Cached:
		status = "cached"
		m.cached++
	}
	m.recent = append(m.recent, fileItem{path: ev.File, status: status})
	if len(m.recent) > window {
		m.recent = m.recent[len(m.recent)-window:]
	}

	// события приходят от воркеров не по порядку
	m.done = max(m.done, ev.Done)
	m.total = max(m.total, ev.Total)
	if m.total == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.done) / float64(m.total))
}

func stageLabel(stage pipeline.Stage, status pipeline.Status) string {
	switch status {
	case pipeline.StatusError:
		return string(stage) + " failed"
	case pipeline.StatusWorking:
		switch stage {
		case pipeline.StageScan:
			return "scanning"
		case pipeline.StageEvaluate:
			return "evaluating"
		case pipeline.StageRewrite:
			return "rewriting"
		case pipeline.StageReport:
			return "reporting"
		}
	}
	return ""
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
