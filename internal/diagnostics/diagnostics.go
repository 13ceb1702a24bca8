// Package diagnostics renders a parse's warnings and errors for a human
// to read: a pure-text formatter for non-interactive callers, and a
// scrollable bubbletea pager for a terminal session, following the same
// Model/Update/View shape the collector library's own views package
// uses for every screen (spec.md §6.3: a diagnostic renderer callback
// fed the (filename, source_text, warnings) triple).
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/go-bms/bmscore/internal/diag"
)

// Report bundles everything a renderer needs to show one file's parse
// results: its name, its original text (for snippet extraction), and the
// diagnostics a parse collected against it.
type Report struct {
	Filename string
	Source   string
	Warnings []diag.Warning
	Errors   []diag.Error
}

var (
	warningColor, _ = colorful.Hex("#D9A441") // amber
	errorColor, _   = colorful.Hex("#D94141") // red

	// colorProfile detects what the output terminal can actually render
	// (true color, 256, ANSI, or none) so severity coloring degrades the
	// way the collector's own bar/meter rendering always has, rather
	// than emitting truecolor escapes a dumb terminal or redirected
	// pipe can't use.
	colorProfile = termenv.ColorProfile()

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	snippetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// severityGradient interpolates between warningColor and errorColor by t
// in [0,1], the same role the teacher's waveform amplitude gradients
// play in views/waveform.go: a single hue sweep standing in for a
// numeric intensity rather than two hardcoded colors picked in isolation.
// The result is resolved against colorProfile so it downgrades on
// terminals that can't show the exact hex value.
func severityGradient(t float64) termenv.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	hex := warningColor.BlendLuv(errorColor, t).Hex()
	return colorProfile.Color(hex)
}

// Render formats r as plain styled text: one line per diagnostic, a
// colored gutter mark, source location, message, and a one-line snippet
// of the offending source text when its byte range is resolvable.
func Render(r Report) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(r.Filename))
	b.WriteString("\n")

	if len(r.Warnings) == 0 && len(r.Errors) == 0 {
		b.WriteString(dimStyle.Render("no diagnostics"))
		b.WriteString("\n")
		return b.String()
	}

	for _, w := range r.Warnings {
		gutter := termenv.String("warn").Foreground(severityGradient(0)).String()
		b.WriteString(renderLine(gutter, w.Line, w.Col, w.Message, w.Range, r.Source))
	}
	for _, e := range r.Errors {
		gutter := termenv.String("error").Foreground(severityGradient(1)).String()
		b.WriteString(renderLine(gutter, 0, 0, e.Message, e.Range, r.Source))
	}
	return b.String()
}

func renderLine(gutter string, line, col int, message string, rng diag.Range, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", gutter)
	if line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", line, col)
	}
	b.WriteString(message)
	b.WriteString("\n")
	if snippet := extractSnippet(source, rng); snippet != "" {
		b.WriteString("    ")
		b.WriteString(snippetStyle.Render(snippet))
		b.WriteString("\n")
	}
	return b.String()
}

// extractSnippet returns the single source line containing rng.Start, or
// "" if the range doesn't resolve against source (e.g. a synthesized
// diagnostic with no byte offset).
func extractSnippet(source string, rng diag.Range) string {
	if rng.Start < 0 || rng.Start >= len(source) {
		return ""
	}
	lineStart := strings.LastIndexByte(source[:rng.Start], '\n') + 1
	lineEnd := strings.IndexByte(source[rng.Start:], '\n')
	if lineEnd == -1 {
		lineEnd = len(source)
	} else {
		lineEnd += rng.Start
	}
	return strings.TrimRight(source[lineStart:lineEnd], "\r")
}

// Model is the interactive scrollable pager.
type Model struct {
	viewport viewport.Model
	report   Report
	ready    bool
}

// NewModel builds a pager for r. It has no size until the first
// tea.WindowSizeMsg arrives, matching bubbles/viewport's own
// lazy-initialization convention.
func NewModel(r Report) Model {
	return Model{report: r}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.viewport.SetContent(Render(m.report))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "loading diagnostics..."
	}
	return m.viewport.View()
}
