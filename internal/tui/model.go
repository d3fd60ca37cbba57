// Package tui implements the interactive pattern lab: type candidate text,
// see per-pattern match verdicts and extracted parameters live.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linktrace/linktrace/internal/deeplink"
	"github.com/linktrace/linktrace/internal/tui/colors"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colors.Purple)
	labelStyle   = lipgloss.NewStyle().Foreground(colors.LightGray)
	matchStyle   = lipgloss.NewStyle().Foreground(colors.Matched)
	noMatchStyle = lipgloss.NewStyle().Foreground(colors.Unmatched)
	paramStyle   = lipgloss.NewStyle().Foreground(colors.Cyan)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Gray).
			Padding(0, 1)
)

// Model is the pattern lab's bubbletea model.
type Model struct {
	input    textinput.Model
	patterns []string
	opts     deeplink.Options
}

func NewModel(patterns []string, opts deeplink.Options) Model {
	ti := textinput.New()
	ti.Placeholder = "paste or type candidate text"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 2048

	return Model{
		input:    ti,
		patterns: patterns,
		opts:     opts,
	}
}

// SetText pre-fills the candidate input, e.g. with clipboard content.
func (m *Model) SetText(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlW:
			m.opts.Wildcards = !m.opts.Wildcards
			return m, nil
		case tea.KeyCtrlS:
			m.opts.StrictHostBoundary = !m.opts.StrictHostBoundary
			return m, nil
		case tea.KeyCtrlG:
			m.opts.SegmentBoundary = !m.opts.SegmentBoundary
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("linktrace pattern lab"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.renderVerdicts()))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(m.renderOptions()))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("ctrl+w wildcards · ctrl+s strict host · ctrl+g segments · esc quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderVerdicts() string {
	if len(m.patterns) == 0 {
		return labelStyle.Render("no patterns configured — try: linktrace patterns add example.com")
	}

	text := m.input.Value()
	matcher := deeplink.NewMatcher(m.opts)

	lines := make([]string, 0, len(m.patterns)+2)
	for _, pattern := range m.patterns {
		if text != "" && matcher.Matches(text, pattern) {
			lines = append(lines, fmt.Sprintf("%s %s", matchStyle.Render("✓"), pattern))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s", noMatchStyle.Render("✗"), pattern))
		}
	}

	if match := deeplink.ResolveWith(text, m.patterns, m.opts); match != nil {
		lines = append(lines, "")
		lines = append(lines, m.renderParams(match)...)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderParams(match *deeplink.Match) []string {
	uri := match.URI()
	lines := []string{
		labelStyle.Render("resolved ") + paramStyle.Render(uri.Scheme+"://"+uri.Host+uri.NormalPath()),
	}

	params := match.Params()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %s = %s", paramStyle.Render(k), params[k]))
	}
	return lines
}

func (m Model) renderOptions() string {
	flag := func(name string, on bool) string {
		if on {
			return "[" + name + "]"
		}
		return " " + name + " "
	}
	return flag("wildcards", m.opts.Wildcards) +
		flag("strict-host", m.opts.StrictHostBoundary) +
		flag("segments", m.opts.SegmentBoundary)
}

// Theme values, mirroring the config constants.
const (
	ThemeAdaptive = 0
	ThemeLight    = 1
	ThemeDark     = 2
)

// Run starts the pattern lab. initialText pre-fills the candidate input.
func Run(patterns []string, opts deeplink.Options, initialText string, theme int) error {
	switch theme {
	case ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	case ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	}

	m := NewModel(patterns, opts)
	if initialText != "" {
		m.SetText(initialText)
	}

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
