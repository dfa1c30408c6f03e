// ABOUTME: Shell-style word splitting for expansion candidates using the mvdan.cc/sh lexer and expander
// ABOUTME: Quotes group words; operators, comments, and $ are ordinary characters

package shellwords

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/mauromedda/cmdexpand/internal/log"
)

// Split turns s into words. Whitespace separates words; single and double
// quotes group text into one word and are removed; a backslash escapes the
// next character. Everything else is literal: "#", ";", "&", ">", "|" and
// "$" are never shell syntax here. A quote without its closing partner is an
// ordinary character.
func Split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	cfg := &expand.Config{}
	var words []string
	var expandErr error
	err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Words(strings.NewReader(literalize(s)), func(w *syntax.Word) bool {
		fields, err := expand.Fields(cfg, w)
		if err != nil {
			expandErr = err
			return false
		}
		words = append(words, strings.Join(fields, " "))
		return true
	})
	if err == nil {
		err = expandErr
	}
	if err != nil {
		log.Debug("shellwords: %v, splitting %q on whitespace", err, s)
		return strings.Fields(s)
	}
	return words
}

// literalize backslash-escapes every ASCII punctuation or symbol byte that
// is outside quotes, so the parser sees nothing but words. Inside double
// quotes "$" and "`" are escaped. Quotes that never close are escaped too.
func literalize(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 < len(s) {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case c == '\'':
			j := strings.IndexByte(s[i+1:], '\'')
			if j < 0 {
				b.WriteString(`\'`)
				continue
			}
			b.WriteString(s[i : i+j+2])
			i += j + 1
		case c == '"':
			end := closingDoubleQuote(s, i+1)
			if end < 0 {
				b.WriteString(`\"`)
				continue
			}
			b.WriteByte('"')
			for k := i + 1; k < end; k++ {
				d := s[k]
				if d == '\\' {
					b.WriteByte(d)
					b.WriteByte(s[k+1])
					k++
					continue
				}
				if d == '$' || d == '`' {
					b.WriteByte('\\')
				}
				b.WriteByte(d)
			}
			b.WriteByte('"')
			i = end
		case c < utf8.RuneSelf && (unicode.IsPunct(rune(c)) || unicode.IsSymbol(rune(c))):
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closingDoubleQuote returns the index of the unescaped '"' at or after
// from, or -1.
func closingDoubleQuote(s string, from int) int {
	for k := from; k < len(s); k++ {
		switch s[k] {
		case '\\':
			k++
		case '"':
			return k
		}
	}
	return -1
}
