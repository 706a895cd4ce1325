package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/for90-runtime/fmtio"
	"github.com/wippyai/for90-runtime/format"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tokenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	reversionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	fieldFormat = iota
	fieldItems
)

type interactiveModel struct {
	err      error
	prog     *format.Program
	output   string
	inputs   []textinput.Model
	focusIdx int
}

func newInteractiveModel(formatSrc, itemsSrc string) *interactiveModel {
	m := &interactiveModel{inputs: make([]textinput.Model, 2)}

	ti := textinput.New()
	ti.Prompt = "format: "
	ti.Placeholder = "(I3,/)"
	ti.Width = 50
	ti.SetValue(formatSrc)
	ti.Focus()
	m.inputs[fieldFormat] = ti

	ti = textinput.New()
	ti.Prompt = "items:  "
	ti.Placeholder = "1, 2, 3"
	ti.Width = 50
	ti.SetValue(itemsSrc)
	m.inputs[fieldItems] = ti

	m.evaluate()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// evaluate recompiles the format and re-runs the write with the current items.
func (m *interactiveModel) evaluate() {
	m.prog, m.output, m.err = nil, "", nil

	if src := strings.TrimSpace(m.inputs[fieldFormat].Value()); src != "" {
		prog, err := format.Compile(src)
		if err != nil {
			m.err = err
			return
		}
		m.prog = prog
	}

	items, err := parseItems(m.inputs[fieldItems].Value())
	if err != nil {
		m.err = err
		return
	}
	m.output, m.err = fmtio.Sprint(m.prog, items...)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			return m, m.inputs[m.focusIdx].Focus()
		}
	}

	var cmd tea.Cmd
	before := m.inputs[m.focusIdx].Value()
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	if m.inputs[m.focusIdx].Value() != before {
		m.evaluate()
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("FORMAT Playground"))
	b.WriteString("\n\n")
	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.prog != nil {
		b.WriteString("program: ")
		b.WriteString(renderTokens(m.prog))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("printf %q", m.prog.Conversion())))
		b.WriteString("\n\n")
	} else if m.err == nil {
		b.WriteString(helpStyle.Render("list-directed"))
		b.WriteString("\n\n")
	}

	if m.output != "" {
		b.WriteString(resultStyle.Render(strings.ReplaceAll(m.output, "\n", "⏎\n")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch field • highlighted tokens repeat • esc quit"))
	return b.String()
}

// renderTokens highlights the tokens replayed on format reversion.
func renderTokens(p *format.Program) string {
	parts := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		if i >= p.ReversionStart && i < p.ReversionEnd {
			parts[i] = reversionStyle.Render(t.String())
		} else {
			parts[i] = tokenStyle.Render(t.String())
		}
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func runInteractive(formatSrc, itemsSrc string) error {
	p := tea.NewProgram(newInteractiveModel(formatSrc, itemsSrc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
