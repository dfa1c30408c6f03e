// ABOUTME: Expander runs one scan pass: splits each span into words and dispatches to the resolver table
// ABOUTME: Unknown or empty candidates resolve to "" with a warning; prompt spans are collected, not answered

package expansion

import (
	"slices"

	"github.com/mauromedda/cmdexpand/internal/log"
	"github.com/mauromedda/cmdexpand/internal/shellwords"
)

// PromptMarker stands in for a prompt whose answer is not known yet.
// NUL never appears in typed command lines, so a user-written "%{prompt}"
// is an ordinary prompt with an empty label rather than a marker.
const PromptMarker = "\x00prompt\x00"

// PromptRequest is one deferred prompt, in encounter order.
type PromptRequest struct {
	Label string
	Index int
}

// Expander resolves %{...} tokens against an editor Context.
type Expander struct {
	resolvers   map[string]Resolver
	scratchName string
	split       func(string) []string
}

// Option configures an Expander.
type Option func(*Expander)

// WithScratchName sets the label used for documents without a path.
func WithScratchName(name string) Option {
	return func(x *Expander) {
		if name != "" {
			x.scratchName = name
		}
	}
}

// WithWordSplitter replaces the shell-word splitter used on candidate text.
func WithWordSplitter(split func(string) []string) Option {
	return func(x *Expander) {
		if split != nil {
			x.split = split
		}
	}
}

// NewExpander creates an Expander with the builtin resolver table.
func NewExpander(opts ...Option) *Expander {
	x := &Expander{
		resolvers:   DefaultResolvers(),
		scratchName: DefaultScratchName,
		split:       shellwords.Split,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// RegisterResolver adds or replaces the resolver for keyword.
func (x *Expander) RegisterResolver(keyword string, r Resolver) {
	x.resolvers[keyword] = r
}

// Keywords returns the registered keywords, sorted.
func (x *Expander) Keywords() []string {
	kws := make([]string, 0, len(x.resolvers))
	for k := range x.resolvers {
		kws = append(kws, k)
	}
	slices.Sort(kws)
	return kws
}

// expand resolves every token in input. Prompt tokens are left as PromptMarker.
func (x *Expander) expand(ctx Context, input string) string {
	out, _ := x.ExpandWithPrompts(ctx, input)
	return out
}

// ExpandWithPrompts resolves every token in input and returns the prompts it
// found, in the order they appear. Each prompt is replaced by PromptMarker.
func (x *Expander) ExpandWithPrompts(ctx Context, input string) (string, []PromptRequest) {
	return x.expandPass(ctx, input, nil)
}

// expandPass runs one full scan of input. The i-th prompt token resolves to
// answers[i] when present; later prompts resolve to PromptMarker. Answers
// are spliced in as resolver output and so are never scanned themselves.
func (x *Expander) expandPass(ctx Context, input string, answers []string) (string, []PromptRequest) {
	pp := &promptPass{answers: answers}
	env := &Env{Context: ctx, ScratchName: x.scratchName, prompts: pp}
	out := reassemble(input, func(inner string) string {
		return x.resolve(env, inner)
	})
	return out, pp.requests
}

// resolve dispatches one candidate by its first word.
func (x *Expander) resolve(env *Env, candidate string) string {
	words := x.split(candidate)
	if len(words) == 0 {
		log.Warn("empty expansion encountered")
		return ""
	}
	r, ok := x.resolvers[words[0]]
	if !ok {
		log.Warn("unknown expansion %s, full str: %s", words[0], candidate)
		return ""
	}
	return r(env, words[1:])
}

// promptPass tracks prompt slots during a single scan.
type promptPass struct {
	answers  []string
	requests []PromptRequest
}

// next records a prompt with label and returns its answer or the marker.
func (p *promptPass) next(label string) string {
	if p == nil {
		return PromptMarker
	}
	i := len(p.requests)
	p.requests = append(p.requests, PromptRequest{Label: label, Index: i})
	if i < len(p.answers) {
		return p.answers[i]
	}
	return PromptMarker
}
