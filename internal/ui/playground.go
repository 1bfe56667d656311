package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jqplay/internal/complete"
	"jqplay/internal/diag"
	"jqplay/internal/interp"
	"jqplay/internal/jsonpath"
)

const maxVisibleCandidates = 8

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type evalDoneMsg struct {
	output     string
	diagnostic *diag.Diagnostic
	script     string
}

type playgroundModel struct {
	ta        textarea.Model
	spinner   spinner.Model
	evaluator interp.Evaluator
	sample    []byte
	paths     []jsonpath.Path

	candidates []complete.Candidate
	selected   int
	showList   bool

	evaluating bool
	output     string
	diagnostic *diag.Diagnostic
	lastScript string

	width  int
	height int
}

// NewPlayground returns a Bubble Tea model for the interactive editor.
// Completion candidates refresh on every keystroke; evaluation runs on
// Ctrl+R against the given sample.
func NewPlayground(sample []byte, ev interp.Evaluator) (tea.Model, error) {
	cache := jsonpath.NewCache()
	paths, err := cache.Paths(sample)
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}

	ta := textarea.New()
	ta.Placeholder = "."
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &playgroundModel{
		ta:        ta,
		spinner:   sp,
		evaluator: ev,
		sample:    sample,
		paths:     paths,
		width:     80,
		height:    24,
	}
	m.refreshCandidates()
	return m, nil
}

func (m *playgroundModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *playgroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			if m.evaluating {
				return m, nil
			}
			m.evaluating = true
			script := m.ta.Value()
			return m, tea.Batch(m.spinner.Tick, m.evalCmd(script))
		case "tab":
			if m.showList && len(m.candidates) > 0 {
				m.ta.InsertString(m.candidates[m.selected].InsertText)
				m.refreshCandidates()
				return m, nil
			}
		case "ctrl+n":
			if m.showList && len(m.candidates) > 0 {
				m.selected = (m.selected + 1) % min(len(m.candidates), maxVisibleCandidates)
				return m, nil
			}
		case "ctrl+p":
			if m.showList && len(m.candidates) > 0 {
				visible := min(len(m.candidates), maxVisibleCandidates)
				m.selected = (m.selected + visible - 1) % visible
				return m, nil
			}
		case "esc":
			m.showList = false
			return m, nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		m.refreshCandidates()
		return m, cmd

	case evalDoneMsg:
		m.evaluating = false
		m.output = msg.output
		m.diagnostic = msg.diagnostic
		m.lastScript = msg.script
		return m, nil

	case spinner.TickMsg:
		if !m.evaluating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.ta.SetWidth(msg.Width - 2)
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *playgroundModel) View() string {
	var b strings.Builder

	header := "jqplay — ctrl+r run, tab complete, ctrl+c quit"
	if m.evaluating {
		header = m.spinner.View() + " evaluating..."
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.ta.View())
	b.WriteString("\n")

	if m.showList && len(m.candidates) > 0 {
		b.WriteString("\n")
		limit := min(len(m.candidates), maxVisibleCandidates)
		for i := 0; i < limit; i++ {
			c := m.candidates[i]
			line := fmt.Sprintf(" %-24s %s", truncate(c.Label, 24), truncate(c.Description, 40))
			if i == m.selected {
				line = selectedStyle.Render(line)
			} else if c.Kind == complete.CandidatePattern {
				line = dimStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.diagnostic != nil:
		var out strings.Builder
		diag.Pretty(&out, *m.diagnostic, m.lastScript, diag.PrettyOpts{})
		b.WriteString(errStyle.Render(strings.TrimRight(out.String(), "\n")))
		b.WriteString("\n")
	case m.output != "":
		b.WriteString(okStyle.Render("result"))
		b.WriteString("\n")
		b.WriteString(truncateLines(m.output, 12))
	}
	return b.String()
}

func (m *playgroundModel) evalCmd(script string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.evaluator.Eval(context.Background(), script, m.sample)
		if err != nil {
			stderr := err.Error()
			if ee, ok := err.(*interp.EvalError); ok {
				stderr = ee.Stderr
			}
			d := diag.Classify(stderr, script)
			return evalDoneMsg{diagnostic: &d, script: script}
		}
		return evalDoneMsg{output: strings.TrimRight(string(out), "\n"), script: script}
	}
}

// refreshCandidates reruns the analyzer and ranker for the text before
// the cursor on the current line.
func (m *playgroundModel) refreshCandidates() {
	line := m.currentLineBeforeCursor()
	ctx := complete.AnalyzeContext(line)
	partial := complete.PartialWord(line)
	m.candidates = complete.Rank(partial, ctx, m.paths, complete.Catalog())
	m.selected = 0
	m.showList = len(m.candidates) > 0
}

func (m *playgroundModel) currentLineBeforeCursor() string {
	lines := strings.Split(m.ta.Value(), "\n")
	row := m.ta.Line()
	if row < 0 || row >= len(lines) {
		return ""
	}
	line := lines[row]
	col := m.ta.LineInfo().ColumnOffset
	if col > len(line) {
		col = len(line)
	}
	return line[:col]
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

func truncateLines(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n") + "\n" + dimStyle.Render("...")
}
