// ABOUTME: Engine ties scanning, deferred prompts, and command invocation into one run per command line
// ABOUTME: Pending carries state across prompt suspensions; Idle -> AwaitingPrompt -> Done | Cancelled

package expansion

import (
	"context"
	"strings"

	"github.com/mauromedda/cmdexpand/internal/log"
)

// DefaultPromptSuffix is appended to prompt labels when shown.
const DefaultPromptSuffix = ": "

// State is the lifecycle stage of a Pending expansion.
type State int

const (
	StateIdle State = iota
	StateAwaitingPrompt
	StateDone
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPrompt:
		return "awaiting-prompt"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Engine expands command lines and runs the named command once all prompts
// are answered. It is driven from a single UI goroutine.
type Engine struct {
	Expander     *Expander
	Prompter     Prompter
	Driver       *Driver
	PromptSuffix string

	active *Pending
}

// Execute joins args with single spaces and runs the expansion for name.
func (e *Engine) Execute(ctx context.Context, ec Context, name string, args []string) *Pending {
	return e.Run(ctx, ec, name, strings.Join(args, " "))
}

// RunLine runs a full command line: the first word names the command and the
// remainder is expanded. The command name itself is never expanded.
func (e *Engine) RunLine(ctx context.Context, ec Context, line string) *Pending {
	return e.RunLineArgs(ctx, ec, line, nil)
}

// RunLineArgs is RunLine with already resolved arguments appended after the
// expanded line. literal is passed through as is and never scanned.
func (e *Engine) RunLineArgs(ctx context.Context, ec Context, line string, literal []string) *Pending {
	line = strings.TrimLeft(line, " ")
	name, rest, _ := strings.Cut(line, " ")
	return e.run(ctx, ec, name, rest, literal)
}

// Run expands input and either invokes name right away or starts prompting.
// The returned Pending reports where the run stopped; it is already terminal
// when input held no prompts.
func (e *Engine) Run(ctx context.Context, ec Context, name, input string) *Pending {
	return e.run(ctx, ec, name, input, nil)
}

func (e *Engine) run(ctx context.Context, ec Context, name, input string, literal []string) *Pending {
	if e.active != nil {
		log.Debug("superseding pending expansion of %s", e.active.name)
		e.active.Cancel()
	}

	out, reqs := e.Expander.ExpandWithPrompts(ec, input)
	p := &Pending{
		engine:  e,
		ctx:     ctx,
		ec:      ec,
		name:    name,
		input:   input,
		partial: out,
		literal: literal,
		labels:  make([]string, len(reqs)),
	}
	for i, r := range reqs {
		p.labels[i] = r.Label
	}

	if len(reqs) == 0 {
		p.finish()
		return p
	}

	p.state = StateAwaitingPrompt
	e.active = p
	p.ask()
	return p
}

// Active returns the expansion waiting on a prompt, or nil.
func (e *Engine) Active() *Pending { return e.active }

// State returns StateAwaitingPrompt while an expansion waits on a prompt,
// StateIdle otherwise.
func (e *Engine) State() State {
	if e.active != nil {
		return e.active.state
	}
	return StateIdle
}

func (e *Engine) suffix() string {
	if e.PromptSuffix == "" {
		return DefaultPromptSuffix
	}
	return e.PromptSuffix
}

// Pending is the state of one command invocation between prompt answers.
// It is created by Run and released on the first terminal transition.
type Pending struct {
	engine *Engine
	// ctx is kept for the deferred command invocation.
	ctx     context.Context
	ec      Context
	name    string
	input   string
	labels  []string
	answers []string
	partial string
	literal []string // appended after partial, unscanned
	state   State
	err     error
}

// State returns the current lifecycle stage.
func (p *Pending) State() State { return p.state }

// Name returns the command that will run.
func (p *Pending) Name() string { return p.name }

// Labels returns the prompt labels in the order they will be asked.
func (p *Pending) Labels() []string { return append([]string(nil), p.labels...) }

// Answers returns the answers collected so far.
func (p *Pending) Answers() []string { return append([]string(nil), p.answers...) }

// Err returns the command error, if the command ran and failed.
func (p *Pending) Err() error { return p.err }

// ask opens the prompt for the next unanswered slot.
func (p *Pending) ask() {
	slot := len(p.answers)
	label := p.labels[slot] + p.engine.suffix()
	p.engine.Prompter.Prompt(label,
		func(answer string) { p.submit(slot, answer) },
		func() { p.cancel(slot) },
	)
}

// Submit answers the current prompt.
func (p *Pending) Submit(answer string) { p.submit(len(p.answers), answer) }

// Cancel abandons the invocation; the command does not run.
func (p *Pending) Cancel() { p.cancel(len(p.answers)) }

// submit records answer for slot. Stale or repeated callbacks are ignored.
func (p *Pending) submit(slot int, answer string) {
	if p.state != StateAwaitingPrompt || slot != len(p.answers) {
		return
	}
	p.answers = append(p.answers, answer)

	// Re-scan the whole original line with the answers bound to their slots.
	p.partial, _ = p.engine.Expander.expandPass(p.ec, p.input, p.answers)

	if len(p.answers) < len(p.labels) {
		p.ask()
		return
	}
	p.finish()
}

func (p *Pending) cancel(slot int) {
	if p.state != StateAwaitingPrompt || slot != len(p.answers) {
		return
	}
	log.Debug("expansion of %s cancelled at prompt %d", p.name, slot+1)
	p.state = StateCancelled
	p.release()
}

// finish invokes the command with the fully resolved line.
func (p *Pending) finish() {
	p.state = StateDone
	line, name, ctx := joinLiteral(p.partial, p.literal), p.name, p.ctx
	p.release()
	if ctx == nil {
		ctx = context.Background()
	}
	p.err = p.engine.Driver.Invoke(ctx, name, line)
}

// release drops everything the invocation was carrying.
func (p *Pending) release() {
	if p.engine.active == p {
		p.engine.active = nil
	}
	p.ctx, p.ec = nil, nil
	p.input, p.partial = "", ""
	p.answers, p.literal = nil, nil
}

// joinLiteral appends literal arguments to an expanded line.
func joinLiteral(line string, literal []string) string {
	if len(literal) == 0 {
		return line
	}
	if line == "" {
		return strings.Join(literal, " ")
	}
	return line + " " + strings.Join(literal, " ")
}
