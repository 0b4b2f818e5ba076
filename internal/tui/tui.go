// Package tui renders a spinner while blocks are being applied and a styled
// summary afterwards.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/snippy/internal/block"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Runner produces the summary the view reports once work completes.
type Runner func() (block.Summary, error)

type summaryMsg struct {
	block.Summary
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

// Model is the bubbletea model wrapping one apply run.
type Model struct {
	run     Runner
	spinner spinner.Model
	state   state
	summary summaryMsg
	err     error
}

// New creates a Model around run.
func New(run Runner) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		run:     run,
		spinner: s,
		state:   stateProcessing,
	}
}

// Run executes the program and returns the error from the apply run, if any.
func Run(run Runner) error {
	m, err := tea.NewProgram(New(run)).Run()
	if err != nil {
		return err
	}
	if final, ok := m.(Model); ok && final.err != nil {
		return final.err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg
		return m, tea.Quit

	case errorMsg:
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		return fmt.Sprintf("%s Applying...", m.spinner.View())
	case stateError:
		return errorStyle.Render("Error: ", m.err.Error())
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	section := func(style lipgloss.Style, title string, files []string) {
		if len(files) == 0 {
			return
		}
		b.WriteString(style.Render(title))
		b.WriteString("\n")
		for _, f := range files {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(f)))
		}
	}
	section(successStyle, "Created:", m.summary.Created)
	section(successStyle, "Modified:", m.summary.Modified)
	section(successStyle, "Deleted:", m.summary.Deleted)
	section(errorStyle, "Failed:", m.summary.Failed)

	if m.summary.Empty() && m.summary.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) start() tea.Msg {
	summary, err := m.run()
	if err != nil {
		return errorMsg{err}
	}
	return summaryMsg{Summary: summary}
}
