// ABOUTME: Non-interactive mode: prompts are answered line by line from a reader
// ABOUTME: Runs one command, or a REPL of command lines until EOF or quit

package line

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/cmdexpand/internal/editor"
	"github.com/mauromedda/cmdexpand/internal/expansion"
	"github.com/mauromedda/cmdexpand/internal/log"
)

// Config configures line mode execution.
type Config struct {
	In          io.Reader
	Out         io.Writer
	ReplPrompt  string // shown before each command line in REPL mode; "" for none
	ShowPrompts bool   // echo prompt labels to Out
}

// Runner drives an Engine without a terminal UI.
type Runner struct {
	cfg    Config
	in     *bufio.Reader
	engine *expansion.Engine
	editor *editor.Editor
}

// New creates a Runner and installs it as engine's Prompter.
func New(cfg Config, engine *expansion.Engine, ed *editor.Editor) *Runner {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.In == nil {
		cfg.In = strings.NewReader("")
	}
	r := &Runner{cfg: cfg, in: bufio.NewReader(cfg.In), engine: engine, editor: ed}
	engine.Prompter = r
	return r
}

// Prompt reads one answer. End of input cancels, and a cancelled command
// neither runs nor counts as a failure.
func (r *Runner) Prompt(label string, onSubmit func(string), onCancel func()) {
	if r.cfg.ShowPrompts {
		fmt.Fprint(r.cfg.Out, label)
	}
	answer, ok := r.readLine()
	if !ok {
		onCancel()
		return
	}
	onSubmit(answer)
}

// readLine returns the next line without its terminator. A final line
// without a newline still counts.
func (r *Runner) readLine() (string, bool) {
	s, err := r.in.ReadString('\n')
	if err != nil && (s == "" || !errors.Is(err, io.EOF)) {
		if !errors.Is(err, io.EOF) {
			log.Warn("reading input: %v", err)
		}
		return "", false
	}
	return strings.TrimRight(s, "\r\n"), true
}

// Run executes name with args and prints the resulting status line.
func (r *Runner) Run(ctx context.Context, name string, args []string) error {
	p := r.engine.Execute(ctx, r.editor, name, args)
	return r.report(p)
}

// RunLine executes a full command line.
func (r *Runner) RunLine(ctx context.Context, line string) error {
	return r.report(r.engine.RunLine(ctx, r.editor, line))
}

// Repl reads and runs command lines until EOF or a quit request. Command
// failures are printed and do not stop the loop.
func (r *Runner) Repl(ctx context.Context) error {
	for !r.editor.ShouldQuit() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.cfg.ReplPrompt != "" {
			fmt.Fprint(r.cfg.Out, r.cfg.ReplPrompt)
		}
		line, ok := r.readLine()
		if !ok {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := r.RunLine(ctx, line); err != nil {
			log.Debug("repl: %v", err)
		}
	}
	return nil
}

func (r *Runner) report(p *expansion.Pending) error {
	if p.State() == expansion.StateCancelled {
		log.Debug("%s cancelled before all prompts were answered", p.Name())
		return nil
	}
	msg, _ := r.editor.Status()
	if msg != "" {
		fmt.Fprintln(r.cfg.Out, msg)
	}
	r.editor.ClearStatus()
	return p.Err()
}
