package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blockcap/blockcheck"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	frameStyle = lipgloss.NewStyle().
			Foreground(successColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	frameBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor).
				Padding(0, 1)
)

type inspectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Filter key.Binding
	Esc    key.Binding
	Quit   key.Binding
}

var inspectKeys = inspectKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous finding"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next finding"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle frame"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type inspectModel struct {
	violations []blockcheck.Violation
	sources    map[string]string
	filter     textinput.Model
	filtering  bool
	cursor     int
	showFrame  bool
	width      int
	height     int
	quitting   bool
}

func newInspectModel(violations []blockcheck.Violation) inspectModel {
	ti := textinput.New()
	ti.Placeholder = "identifier or file..."
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = "filter> "

	return inspectModel{
		violations: violations,
		sources:    make(map[string]string),
		filter:     ti,
		showFrame:  true,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m inspectModel) visible() []blockcheck.Violation {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return m.violations
	}
	var out []blockcheck.Violation
	for _, v := range m.violations {
		if strings.Contains(strings.ToLower(v.Ident), query) ||
			strings.Contains(strings.ToLower(v.Pos.Filename), query) ||
			strings.Contains(strings.ToLower(v.Message), query) {
			out = append(out, v)
		}
	}
	return out
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch {
			case key.Matches(msg, inspectKeys.Enter):
				m.filtering = false
				m.filter.Blur()
				m.cursor = 0
				return m, nil
			case key.Matches(msg, inspectKeys.Esc):
				m.filtering = false
				m.filter.Blur()
				m.filter.SetValue("")
				m.cursor = 0
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, inspectKeys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, inspectKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, inspectKeys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, inspectKeys.Enter):
			m.showFrame = !m.showFrame
			return m, nil

		case key.Matches(msg, inspectKeys.Filter):
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink

		case key.Matches(msg, inspectKeys.Esc):
			m.filter.SetValue("")
			m.cursor = 0
			return m, nil
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	visible := m.visible()
	b.WriteString(headerStyle.Render(fmt.Sprintf("blockcap inspect — %d finding(s)", len(visible))))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("nothing to show"))
		b.WriteString("\n")
		return b.String()
	}
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}

	for i, v := range visible {
		line := fmt.Sprintf("%s %s:%d:%d %s",
			kindStyle.Render(v.Kind.String()),
			v.Pos.Filename, v.Pos.Line, v.Pos.Column,
			v.Message,
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.showFrame {
		v := visible[m.cursor]
		if frame := blockcheck.FormatFrame(sourceFor(m.sources, v.Pos.Filename), v.Pos); frame != "" {
			b.WriteString("\n")
			b.WriteString(frameBorderStyle.Render(frameStyle.Render(frame)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓ move · enter toggle frame · / filter · esc clear · q quit"))
	b.WriteString("\n")
	return b.String()
}

func inspectCommand(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	strict := fs.Bool("strict", strictDefault(), "fail on syntax shapes the capture walker does not model")
	if err := fs.Parse(args); err != nil {
		return err
	}
	patterns := fs.Args()
	if len(patterns) == 0 {
		return errors.New("blockcap inspect: package pattern required")
	}

	violations, err := runCheck(patterns, *strict)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	program := tea.NewProgram(newInspectModel(violations), tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("inspect ui: %w", err)
	}
	return fmt.Errorf("capture check found %d issue(s)", len(violations))
}
