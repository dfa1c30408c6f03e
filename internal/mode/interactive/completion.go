// ABOUTME: CompletionModel lists fuzzy matches for the word under the cursor
// ABOUTME: Completes command names in first position and %{keyword} names inside tokens

package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/cmdexpand/pkg/fuzzy"
	"github.com/mauromedda/cmdexpand/pkg/width"
)

const maxCompletionVisible = 8

// CompletionSelectMsg is returned when the user accepts a candidate.
type CompletionSelectMsg struct{ Text string }

// CompletionDismissMsg is returned when the user presses escape.
type CompletionDismissMsg struct{}

// CompletionModel is a filterable list of replacement candidates.
// Implements tea.Model with value semantics.
type CompletionModel struct {
	candidates []string
	selected   int
	width      int
}

// NewCompletionModel creates a list over candidates, best first.
func NewCompletionModel(candidates []string) CompletionModel {
	return CompletionModel{candidates: candidates}
}

// Init returns nil; no commands needed at startup.
func (m CompletionModel) Init() tea.Cmd { return nil }

// Update handles navigation keys. Tab and down advance, shift+tab and up go back.
func (m CompletionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyDown, tea.KeyTab:
			m.move(1)
		case tea.KeyUp, tea.KeyShiftTab:
			m.move(-1)
		case tea.KeyEnter:
			if sel := m.Selected(); sel != "" {
				return m, func() tea.Msg { return CompletionSelectMsg{Text: sel} }
			}
		case tea.KeyEsc:
			return m, func() tea.Msg { return CompletionDismissMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders at most maxCompletionVisible candidates around the selection.
func (m CompletionModel) View() string {
	total := len(m.candidates)
	if total == 0 {
		return ""
	}
	start, end := 0, total
	if total > maxCompletionVisible {
		start = max(0, m.selected-maxCompletionVisible/2)
		end = min(total, start+maxCompletionVisible)
		start = end - maxCompletionVisible
	}

	s := Styles()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := fmt.Sprintf("  %s", m.candidates[i])
		if m.width > 0 {
			line = width.Truncate(line, m.width)
		}
		if i == m.selected {
			line = s.Bold.Render(s.Selection.Render(line))
		} else {
			line = s.Dim.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Selected returns the highlighted candidate.
func (m CompletionModel) Selected() string {
	if len(m.candidates) == 0 {
		return ""
	}
	return m.candidates[m.selected]
}

func (m *CompletionModel) move(delta int) {
	if len(m.candidates) == 0 {
		return
	}
	m.selected = (m.selected + delta + len(m.candidates)) % len(m.candidates)
}

// completionTarget describes the word being completed in a command line.
type completionTarget struct {
	prefix  string // text before the word
	word    string // partial word
	keyword bool   // inside an unterminated %{ token
}

// findTarget inspects the text left of the cursor. A word inside an open
// %{ token completes keywords; the first word completes command names.
func findTarget(before string) (completionTarget, bool) {
	if open := strings.LastIndex(before, "%{"); open >= 0 && !strings.Contains(before[open:], "}") {
		inner := before[open+2:]
		if strings.ContainsRune(inner, ' ') {
			return completionTarget{}, false
		}
		return completionTarget{prefix: before[:open+2], word: inner, keyword: true}, true
	}
	if strings.ContainsRune(strings.TrimLeft(before, " "), ' ') {
		return completionTarget{}, false
	}
	return completionTarget{word: strings.TrimLeft(before, " ")}, true
}

// rankCandidates orders items by fuzzy score; an empty word keeps every item.
func rankCandidates(word string, items []string) []string {
	if word == "" {
		return append([]string(nil), items...)
	}
	matches := fuzzy.Find(word, items)
	out := make([]string, len(matches))
	for i, mt := range matches {
		out[i] = mt.Str
	}
	return out
}
