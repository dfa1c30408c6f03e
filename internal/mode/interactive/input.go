// ABOUTME: InputModel is a single-line text input for command lines and prompt answers
// ABOUTME: Cursor moves by grapheme cluster; rendering highlights the cell under the cursor

package interactive

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/cmdexpand/pkg/width"
)

// InputModel holds editable text as grapheme clusters.
// Implements tea.Model with value semantics.
type InputModel struct {
	text        []string
	cursor      int // index into text; len(text) is end of line
	prompt      string
	placeholder string
	width       int
}

// NewInputModel creates an empty input.
func NewInputModel() InputModel { return InputModel{} }

// Init returns nil; no commands needed for a leaf model.
func (m InputModel) Init() tea.Cmd { return nil }

// Update handles editing keys.
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.dispatchKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m *InputModel) dispatchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		m.insert(string(msg.Runes))
	case tea.KeySpace:
		m.insert(" ")
	case tea.KeyBackspace:
		if m.cursor > 0 {
			m.text = append(m.text[:m.cursor-1], m.text[m.cursor:]...)
			m.cursor--
		}
	case tea.KeyDelete:
		if m.cursor < len(m.text) {
			m.text = append(m.text[:m.cursor], m.text[m.cursor+1:]...)
		}
	case tea.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyRight:
		if m.cursor < len(m.text) {
			m.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		m.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.cursor = len(m.text)
	case tea.KeyCtrlK:
		m.text = m.text[:m.cursor]
	}
}

func (m *InputModel) insert(s string) {
	if s == "" {
		return
	}
	gs := width.Graphemes(s)
	tail := append([]string(nil), m.text[m.cursor:]...)
	m.text = append(append(m.text[:m.cursor], gs...), tail...)
	m.cursor += len(gs)
}

// View renders prompt, text and a block cursor.
func (m InputModel) View() string {
	s := Styles()
	var b strings.Builder
	b.WriteString(m.prompt)
	if len(m.text) == 0 && m.placeholder != "" {
		b.WriteString(s.Cursor.Render(" "))
		b.WriteString(s.Placeholder.Render(m.placeholder))
		return b.String()
	}
	b.WriteString(strings.Join(m.text[:m.cursor], ""))
	under := " "
	if m.cursor < len(m.text) {
		under = m.text[m.cursor]
	}
	b.WriteString(s.Cursor.Render(under))
	if m.cursor < len(m.text) {
		b.WriteString(strings.Join(m.text[m.cursor+1:], ""))
	}
	return b.String()
}

// Text returns the current contents.
func (m InputModel) Text() string { return strings.Join(m.text, "") }

// SetText replaces the contents and moves the cursor to the end.
func (m InputModel) SetText(s string) InputModel {
	m.text = width.Graphemes(s)
	m.cursor = len(m.text)
	return m
}

// CursorPos returns the grapheme index of the cursor.
func (m InputModel) CursorPos() int { return m.cursor }

// BeforeCursor returns the text left of the cursor.
func (m InputModel) BeforeCursor() string { return strings.Join(m.text[:m.cursor], "") }

// SetPrompt sets the rendered prefix.
func (m InputModel) SetPrompt(p string) InputModel {
	m.prompt = p
	return m
}

// SetPlaceholder sets the hint shown while empty.
func (m InputModel) SetPlaceholder(p string) InputModel {
	m.placeholder = p
	return m
}

// IsEmpty reports whether the input holds no text.
func (m InputModel) IsEmpty() bool { return len(m.text) == 0 }
