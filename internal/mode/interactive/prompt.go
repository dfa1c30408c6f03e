// ABOUTME: Prompt is the interactive prompt surface handed to the expansion engine
// ABOUTME: The engine opens it from Update; the app routes the next accept or cancel key back to it

package interactive

// Prompt implements expansion.Prompter for the Bubble Tea app. It is shared by
// pointer across model copies and touched only from Update.
type Prompt struct {
	label    string
	onSubmit func(string)
	onCancel func()
}

// Prompt opens a prompt. An already open prompt is replaced.
func (p *Prompt) Prompt(label string, onSubmit func(string), onCancel func()) {
	p.label, p.onSubmit, p.onCancel = label, onSubmit, onCancel
}

// Open reports whether a prompt is waiting for an answer.
func (p *Prompt) Open() bool { return p.onSubmit != nil }

// Label returns the label of the open prompt.
func (p *Prompt) Label() string { return p.label }

// Submit closes the prompt with answer. The callback runs after the prompt is
// closed, so it may open the next one.
func (p *Prompt) Submit(answer string) {
	fn := p.onSubmit
	p.close()
	if fn != nil {
		fn(answer)
	}
}

// Cancel closes the prompt without an answer.
func (p *Prompt) Cancel() {
	fn := p.onCancel
	p.close()
	if fn != nil {
		fn()
	}
}

func (p *Prompt) close() {
	p.label, p.onSubmit, p.onCancel = "", nil, nil
}
