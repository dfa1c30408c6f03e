// ABOUTME: Display width of command-line text with grapheme-aware segmentation
// ABOUTME: Fast path for printable ASCII; wide East Asian characters and emoji count as two cells

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Visible returns the number of terminal cells s occupies.
func Visible(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
	}
	return w
}

// Graphemes splits s into user-perceived characters.
func Graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// Truncate cuts s to at most maxWidth cells, ending with an ellipsis when
// anything was dropped.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Visible(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	var b strings.Builder
	col := 0
	for _, cluster := range Graphemes(s) {
		cw := clusterWidth(cluster)
		if col+cw > maxWidth-1 {
			break
		}
		b.WriteString(cluster)
		col += cw
	}
	b.WriteRune('…')
	return b.String()
}

// TruncateLeft keeps the last maxWidth cells of s, starting with an ellipsis
// when anything was dropped. Used for paths where the tail matters most.
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Visible(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	gs := Graphemes(s)
	col := 0
	i := len(gs)
	for i > 0 {
		cw := clusterWidth(gs[i-1])
		if col+cw > maxWidth-1 {
			break
		}
		col += cw
		i--
	}
	return "…" + strings.Join(gs[i:], "")
}

// PadRight appends spaces until s is w cells wide.
func PadRight(s string, w int) string {
	if n := w - Visible(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
