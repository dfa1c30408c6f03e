// ABOUTME: Language detection from file names using chroma's lexer registry
// ABOUTME: Names are lowercased with spaces replaced by dashes ("Go" -> "go", "Emacs Lisp" -> "emacs-lisp")

package editor

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// DetectLanguage returns the language name for filename and whether one matched.
func DetectLanguage(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}
	lexer := lexers.Match(filename)
	if lexer == nil {
		return "", false
	}
	cfg := lexer.Config()
	if cfg == nil || cfg.Name == "" {
		return "", false
	}
	return languageID(cfg.Name), true
}

func languageID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
