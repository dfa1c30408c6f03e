// ABOUTME: Token scanner and reassembler for %{...} spans
// ABOUTME: Copies text between spans verbatim and splices in each resolved fragment in source order

package expansion

import (
	"regexp"
	"strings"
)

// spanRe matches one expansion: "%{", one or more non-"}" bytes, "}".
// Spans never nest; the first "}" closes the span.
var spanRe = regexp.MustCompile(`%\{([^}]+)\}`)

// Span is one matched %{...} token. Start and End are byte offsets into the
// input (half-open); Inner is the text between the braces.
type Span struct {
	Start int
	End   int
	Inner string
}

// Spans returns every expansion span in input, left to right.
func Spans(input string) []Span {
	locs := spanRe.FindAllStringSubmatchIndex(input, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], End: loc[1], Inner: input[loc[2]:loc[3]]})
	}
	return spans
}

// reassemble rebuilds input, replacing each span with resolve(span.Inner).
// resolve is called once per span, in order.
func reassemble(input string, resolve func(inner string) string) string {
	spans := Spans(input)
	if len(spans) == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))
	last := 0
	for _, sp := range spans {
		b.WriteString(input[last:sp.Start])
		b.WriteString(resolve(sp.Inner))
		last = sp.End
	}
	b.WriteString(input[last:])
	return b.String()
}
