// ABOUTME: In-memory document buffer: path, text, primary selection, detected language
// ABOUTME: Cursor follows the head of the selection, stepping back one grapheme on forward ranges

package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/mauromedda/cmdexpand/internal/pathutil"
)

// Range is a selection range over the buffer text in byte offsets.
// Anchor stays put while Head moves; either may be the larger offset.
type Range struct {
	Anchor int
	Head   int
}

// From returns the smaller offset.
func (r Range) From() int { return min(r.Anchor, r.Head) }

// To returns the larger offset.
func (r Range) To() int { return max(r.Anchor, r.Head) }

// Buffer is a single open document.
type Buffer struct {
	path     string // absolute and NFC-normalized; empty for scratch buffers
	text     string
	sel      Range
	language string // explicit override; empty means detect from path
	cwd      func() string
}

// NewScratch creates an unnamed buffer holding text.
// cwd is consulted whenever a relative path is needed.
func NewScratch(text string, cwd func() string) *Buffer {
	return &Buffer{text: text, cwd: cwd}
}

// Open reads path (resolved against cwd) into a new buffer.
// A missing file yields an empty buffer bound to that path.
func Open(path string, cwd func() string) (*Buffer, error) {
	abs := pathutil.Absolute(path, cwd())
	data, err := os.ReadFile(abs)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Buffer{path: abs, text: string(data), cwd: cwd}, nil
}

// Path returns the absolute path of the buffer, if it has one.
func (b *Buffer) Path() (string, bool) {
	return b.path, b.path != ""
}

// RelativePath returns the path relative to the current working directory,
// or the absolute path when the file lies outside it.
func (b *Buffer) RelativePath() (string, bool) {
	if b.path == "" {
		return "", false
	}
	rel, _ := pathutil.StripPrefix(b.path, b.cwd())
	return rel, true
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string { return b.text }

// SetText replaces the contents and clamps the selection.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.SetSelection(b.sel.Anchor, b.sel.Head)
}

// Selection returns the primary selection.
func (b *Buffer) Selection() Range { return b.sel }

// SetSelection sets the primary selection, clamping both ends to the text.
func (b *Buffer) SetSelection(anchor, head int) {
	b.sel = Range{Anchor: clamp(anchor, 0, len(b.text)), Head: clamp(head, 0, len(b.text))}
}

// SelectionText returns the text covered by the primary selection.
func (b *Buffer) SelectionText() string {
	return b.text[b.sel.From():b.sel.To()]
}

// Cursor returns the byte offset of the cursor. For a forward selection
// (head after anchor) the cursor sits on the last selected grapheme.
func (b *Buffer) Cursor() int {
	if b.sel.Head <= b.sel.Anchor {
		return b.sel.Head
	}
	return prevGraphemeBoundary(b.text, b.sel.Head)
}

// CursorLine returns the 0-based line of the cursor.
func (b *Buffer) CursorLine() int {
	return strings.Count(b.text[:b.Cursor()], "\n")
}

// LineCount returns the number of lines; a trailing newline does not start a new line.
func (b *Buffer) LineCount() int {
	n := strings.Count(b.text, "\n")
	if b.text == "" || !strings.HasSuffix(b.text, "\n") {
		n++
	}
	return n
}

// LineStart returns the byte offset of the first character of the 0-based line.
// Lines past the end clamp to the last line.
func (b *Buffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	off := 0
	for i := 0; i < line; i++ {
		j := strings.IndexByte(b.text[off:], '\n')
		if j < 0 || off+j+1 >= len(b.text) {
			return off
		}
		off += j + 1
	}
	return off
}

// LineEnd returns the byte offset just past the newline ending the 0-based line.
func (b *Buffer) LineEnd(line int) int {
	start := b.LineStart(line)
	j := strings.IndexByte(b.text[start:], '\n')
	if j < 0 {
		return len(b.text)
	}
	return start + j + 1
}

// GotoLine puts a one-grapheme selection at the start of the 0-based line.
func (b *Buffer) GotoLine(line int) {
	start := b.LineStart(line)
	b.SetSelection(start, nextGraphemeBoundary(b.text, start))
}

// SelectLines selects whole 0-based lines from..to inclusive.
func (b *Buffer) SelectLines(from, to int) {
	if to < from {
		from, to = to, from
	}
	b.SetSelection(b.LineStart(from), b.LineEnd(to))
}

// SetLanguage overrides language detection. An empty name restores detection.
func (b *Buffer) SetLanguage(name string) { b.language = name }

// LanguageName returns the language of the buffer, detected from its file
// name unless overridden.
func (b *Buffer) LanguageName() (string, bool) {
	if b.language != "" {
		return b.language, true
	}
	if b.path == "" {
		return "", false
	}
	return DetectLanguage(filepath.Base(b.path))
}

// Write saves the buffer to its path.
func (b *Buffer) Write() error {
	if b.path == "" {
		return fmt.Errorf("buffer has no path")
	}
	if err := os.WriteFile(b.path, []byte(b.text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	return nil
}

// prevGraphemeBoundary returns the start of the grapheme cluster that ends at off.
func prevGraphemeBoundary(s string, off int) int {
	prev := 0
	state := -1
	pos := 0
	rest := s
	for len(rest) > 0 && pos < off {
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		prev = pos
		pos += len(cluster)
		rest = next
		state = newState
	}
	return prev
}

// nextGraphemeBoundary returns the end of the grapheme cluster starting at off.
func nextGraphemeBoundary(s string, off int) int {
	if off >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[off:], -1)
	return off + len(cluster)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
