// ABOUTME: Hand-written fakes for expansion tests: document, context, prompter, registry, status
// ABOUTME: The prompter records open prompts so tests can answer or cancel them explicitly

package expansion

import (
	"context"
	"sort"
)

type fakeDoc struct {
	path      string
	rel       string
	selection string
	line      int
	lang      string
}

func (d *fakeDoc) Path() (string, bool)         { return d.path, d.path != "" }
func (d *fakeDoc) RelativePath() (string, bool) { return d.rel, d.rel != "" }
func (d *fakeDoc) SelectionText() string        { return d.selection }
func (d *fakeDoc) CursorLine() int              { return d.line }
func (d *fakeDoc) LanguageName() (string, bool) { return d.lang, d.lang != "" }

type fakeCtx struct {
	doc  *fakeDoc
	cwd  string
	root string
}

func (c *fakeCtx) Document() Document { return c.doc }
func (c *fakeCtx) WorkingDir() string { return c.cwd }
func (c *fakeCtx) WorkspaceRoot() (string, bool) {
	if c.root == "" {
		return c.cwd, false
	}
	return c.root, true
}

func newCtx() *fakeCtx {
	return &fakeCtx{
		doc: &fakeDoc{
			path:      "/home/u/proj/src/main.rs",
			rel:       "src/main.rs",
			selection: "fn main",
			line:      4,
			lang:      "rust",
		},
		cwd:  "/home/u/proj",
		root: "/home/u/proj",
	}
}

// openPrompt is one prompt the engine asked for.
type openPrompt struct {
	label    string
	onSubmit func(string)
	onCancel func()
}

type fakePrompter struct {
	prompts []openPrompt
}

func (f *fakePrompter) Prompt(label string, onSubmit func(string), onCancel func()) {
	f.prompts = append(f.prompts, openPrompt{label: label, onSubmit: onSubmit, onCancel: onCancel})
}

// last returns the most recently opened prompt.
func (f *fakePrompter) last() openPrompt { return f.prompts[len(f.prompts)-1] }

// autoPrompter answers every prompt synchronously from a queue.
type autoPrompter struct {
	answers []string
	labels  []string
}

func (a *autoPrompter) Prompt(label string, onSubmit func(string), onCancel func()) {
	a.labels = append(a.labels, label)
	if len(a.answers) == 0 {
		onCancel()
		return
	}
	next := a.answers[0]
	a.answers = a.answers[1:]
	onSubmit(next)
}

type call struct {
	name string
	args []string
}

type fakeRegistry struct {
	handlers map[string]Handler
	calls    []call
}

func newRegistry(names ...string) *fakeRegistry {
	r := &fakeRegistry{handlers: make(map[string]Handler)}
	for _, n := range names {
		r.add(n, nil)
	}
	return r
}

// add registers name; a non-nil err makes every invocation fail with it.
func (r *fakeRegistry) add(name string, err error) {
	r.handlers[name] = HandlerFunc(func(_ context.Context, args []string) error {
		r.calls = append(r.calls, call{name: name, args: args})
		return err
	})
}

func (r *fakeRegistry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

func (r *fakeRegistry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type fakeStatus struct {
	errors []string
}

func (s *fakeStatus) SetError(msg string) { s.errors = append(s.errors, msg) }
