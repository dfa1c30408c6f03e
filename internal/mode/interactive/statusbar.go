// ABOUTME: StatusBarModel renders the two-line status area under the command line
// ABOUTME: Line 1: document path, cursor line, language, working directory. Line 2: last status message

package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/cmdexpand/internal/editor"
	"github.com/mauromedda/cmdexpand/pkg/width"
)

// StatusBarModel is a snapshot of editor state for rendering.
type StatusBarModel struct {
	path     string
	line     int // 1-based
	lang     string
	cwd      string
	message  string
	severity editor.Severity
	width    int
}

// NewStatusBarModel creates an empty StatusBarModel.
func NewStatusBarModel() StatusBarModel { return StatusBarModel{} }

// Init returns nil; no commands needed for a leaf model.
func (m StatusBarModel) Init() tea.Cmd { return nil }

// Update tracks the terminal width.
func (m StatusBarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}

// Refresh copies the current editor state into the model.
func (m StatusBarModel) Refresh(ed *editor.Editor, scratchName string) StatusBarModel {
	buf := ed.Buffer()
	if rel, ok := buf.RelativePath(); ok {
		m.path = rel
	} else {
		m.path = scratchName
	}
	m.line = buf.CursorLine() + 1
	if lang, ok := buf.LanguageName(); ok {
		m.lang = lang
	} else {
		m.lang = "text"
	}
	m.cwd = ed.WorkingDir()
	m.message, m.severity = ed.Status()
	return m
}

// View renders both lines, truncated to the terminal width.
func (m StatusBarModel) View() string {
	s := Styles()

	pos := fmt.Sprintf("%d", m.line)
	cwd := m.cwd
	path := m.path
	if m.width > 0 {
		// path, line, lang, then cwd get what is left, in that order of priority.
		fixed := width.Visible(pos) + width.Visible(m.lang) + 6
		room := m.width - fixed
		path = width.TruncateLeft(path, max(room/2, 8))
		cwd = width.TruncateLeft(cwd, max(room-width.Visible(path), 0))
	}
	parts := []string{
		s.StatusPath.Render(path),
		s.StatusLine.Render(pos),
		s.StatusLang.Render(m.lang),
	}
	if cwd != "" {
		parts = append(parts, s.StatusDir.Render(cwd))
	}
	line1 := strings.Join(parts, "  ")

	msg := m.message
	if i := strings.IndexByte(msg, '\n'); i >= 0 && m.width > 0 {
		// Multi-line output (help, shell) is shown in the body instead.
		msg = msg[:i]
	}
	if m.width > 0 {
		msg = width.Truncate(msg, m.width)
	}
	style := s.Info
	if m.severity == editor.SeverityError {
		style = s.Error
	}
	return line1 + "\n" + style.Render(msg)
}
