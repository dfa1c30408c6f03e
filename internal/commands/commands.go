// ABOUTME: Typable command registry and dispatch for the editor command line
// ABOUTME: Builtins: cd, echo, goto, help, lang, open, pwd, quit, run-shell-command, select, write; plus config aliases

package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mauromedda/cmdexpand/internal/editor"
	"github.com/mauromedda/cmdexpand/internal/expansion"
)

// ErrUsage is returned when a command gets the wrong number or kind of arguments.
var ErrUsage = errors.New("usage")

// ErrAliasDepth is returned when aliases nest deeper than MaxAliasDepth.
var ErrAliasDepth = errors.New("alias nesting too deep")

// Unlimited marks a command without an upper argument bound.
const Unlimited = -1

// MaxAliasDepth bounds how many aliases may run inside one another.
const MaxAliasDepth = 16

type aliasDepthKey struct{}

// Command represents a typable command.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	MinArgs     int
	MaxArgs     int // Unlimited for no bound
	Execute     func(ctx context.Context, cc *CommandContext, args []string) (string, error)
}

// CommandContext provides access to editor state for commands.
type CommandContext struct {
	Editor *editor.Editor

	// Shell selects how run-shell-command executes: "interp" (default) or "exec".
	Shell string

	// RunAlias expands line and runs it with args appended unexpanded.
	// Nilable; alias commands fail with "not available" when nil.
	RunAlias func(ctx context.Context, line string, args []string) error

	// ExitFn is called by quit in addition to Editor.RequestQuit. Nilable.
	ExitFn func()

	// Background, when set, takes slow work off the caller's goroutine. The
	// task must not touch editor state; the host shows its result when done.
	// Nilable; such work then runs inline.
	Background func(label string, task func(ctx context.Context) (string, error))
}

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	names    map[string]*Command // names and aliases
	cc       *CommandContext
}

// NewRegistry creates a registry bound to cc with all core commands registered.
func NewRegistry(cc *CommandContext) *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		names:    make(map[string]*Command),
		cc:       cc,
	}
	r.registerCoreCommands()
	return r
}

// Register adds cmd, replacing any command that already uses its name or aliases.
func (r *Registry) Register(cmd *Command) {
	if old, ok := r.names[cmd.Name]; ok && old.Name == cmd.Name {
		for _, a := range old.Aliases {
			delete(r.names, a)
		}
	}
	r.commands[cmd.Name] = cmd
	r.names[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		r.names[a] = cmd
	}
}

// Get returns a command by name or alias.
// The second return value indicates whether the name was found.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.names[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns every callable name, including aliases, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a handler that runs the named command against the
// registry's context and shows its output on the status line.
func (r *Registry) Lookup(name string) (expansion.Handler, bool) {
	cmd, ok := r.names[name]
	if !ok {
		return nil, false
	}
	return expansion.HandlerFunc(func(ctx context.Context, args []string) error {
		out, err := r.run(ctx, cmd, args)
		if err != nil {
			return err
		}
		if out != "" && r.cc.Editor != nil {
			r.cc.Editor.SetStatus(out)
		}
		return nil
	}), true
}

// run checks the argument count and executes cmd.
func (r *Registry) run(ctx context.Context, cmd *Command, args []string) (string, error) {
	if len(args) < cmd.MinArgs || (cmd.MaxArgs != Unlimited && len(args) > cmd.MaxArgs) {
		return "", fmt.Errorf("%w: %s", ErrUsage, cmd.usage())
	}
	return cmd.Execute(ctx, r.cc, args)
}

func (c *Command) usage() string {
	if c.Usage != "" {
		return c.Name + " " + c.Usage
	}
	return c.Name
}

// RegisterAlias adds a command that runs line through CommandContext.RunAlias.
// Expansions inside line are resolved when the alias runs; the arguments the
// alias was called with are already resolved and are appended as they are.
func (r *Registry) RegisterAlias(name, line string) {
	r.Register(&Command{
		Name:        name,
		Description: "Alias for: " + line,
		MaxArgs:     Unlimited,
		Execute: func(ctx context.Context, cc *CommandContext, args []string) (string, error) {
			if cc.RunAlias == nil {
				return "", fmt.Errorf("alias %s: not available", name)
			}
			depth, _ := ctx.Value(aliasDepthKey{}).(int)
			if depth >= MaxAliasDepth {
				return "", fmt.Errorf("%w: %s", ErrAliasDepth, name)
			}
			ctx = context.WithValue(ctx, aliasDepthKey{}, depth+1)
			return "", cc.RunAlias(ctx, line, args)
		},
	})
}

// registerCoreCommands adds all builtin commands to the registry.
func (r *Registry) registerCoreCommands() {
	core := []*Command{
		{
			Name:        "cd",
			Aliases:     []string{"change-current-directory"},
			Description: "Change the working directory",
			Usage:       "<dir>",
			MinArgs:     1,
			MaxArgs:     1,
			Execute: func(_ context.Context, cc *CommandContext, args []string) (string, error) {
				if err := cc.Editor.ChangeDir(args[0]); err != nil {
					return "", err
				}
				return "Current working directory is now " + cc.Editor.WorkingDir(), nil
			},
		},
		{
			Name:        "echo",
			Description: "Show the arguments on the status line",
			MaxArgs:     Unlimited,
			Execute: func(_ context.Context, _ *CommandContext, args []string) (string, error) {
				return strings.Join(args, " "), nil
			},
		},
		{
			Name:        "goto",
			Aliases:     []string{"g"},
			Description: "Move the cursor to a 1-based line",
			Usage:       "<line>",
			MinArgs:     1,
			MaxArgs:     1,
			Execute: func(_ context.Context, cc *CommandContext, args []string) (string, error) {
				n, err := parseLine(args[0])
				if err != nil {
					return "", err
				}
				cc.Editor.Buffer().GotoLine(n - 1)
				return "", nil
			},
		},
		{
			Name:        "help",
			Aliases:     []string{"h"},
			Description: "Show available commands",
			Execute: func(_ context.Context, _ *CommandContext, _ []string) (string, error) {
				var b strings.Builder
				b.WriteString("Available commands:")
				for _, cmd := range r.List() {
					fmt.Fprintf(&b, "\n  %-18s %s", cmd.usage(), cmd.Description)
				}
				return b.String(), nil
			},
		},
		{
			Name:        "lang",
			Aliases:     []string{"set-language"},
			Description: "Override the language of the current buffer",
			Usage:       "<name>",
			MaxArgs:     1,
			Execute: func(_ context.Context, cc *CommandContext, args []string) (string, error) {
				if len(args) == 0 {
					name, ok := cc.Editor.Buffer().LanguageName()
					if !ok {
						name = "text"
					}
					return "Language: " + name, nil
				}
				cc.Editor.Buffer().SetLanguage(args[0])
				return "Language set to " + args[0], nil
			},
		},
		{
			Name:        "open",
			Aliases:     []string{"o", "e", "edit"},
			Description: "Open a file into the current buffer",
			Usage:       "<path>",
			MinArgs:     1,
			MaxArgs:     1,
			Execute: func(_ context.Context, cc *CommandContext, args []string) (string, error) {
				if err := cc.Editor.OpenFile(args[0]); err != nil {
					return "", err
				}
				p, _ := cc.Editor.Buffer().Path()
				return "Opened " + p, nil
			},
		},
		{
			Name:        "pwd",
			Aliases:     []string{"show-directory"},
			Description: "Show the working directory",
			Execute: func(_ context.Context, cc *CommandContext, _ []string) (string, error) {
				return cc.Editor.WorkingDir(), nil
			},
		},
		{
			Name:        "quit",
			Aliases:     []string{"q"},
			Description: "Exit the editor",
			Execute: func(_ context.Context, cc *CommandContext, _ []string) (string, error) {
				cc.Editor.RequestQuit()
				if cc.ExitFn != nil {
					cc.ExitFn()
				}
				return "", nil
			},
		},
		{
			Name:        "run-shell-command",
			Aliases:     []string{"sh"},
			Description: "Run a shell command in the working directory",
			Usage:       "<command>...",
			MinArgs:     1,
			MaxArgs:     Unlimited,
			Execute: func(ctx context.Context, cc *CommandContext, args []string) (string, error) {
				mode, dir, script := cc.Shell, cc.Editor.WorkingDir(), strings.Join(args, " ")
				if cc.Background == nil {
					return runShell(ctx, mode, dir, script)
				}
				cc.Background(script, func(ctx context.Context) (string, error) {
					return runShell(ctx, mode, dir, script)
				})
				return "Running " + script, nil
			},
		},
		{
			Name:        "select",
			Description: "Select whole lines (1-based, inclusive)",
			Usage:       "<from> [to]",
			MinArgs:     1,
			MaxArgs:     2,
			Execute: func(_ context.Context, cc *CommandContext, args []string) (string, error) {
				from, err := parseLine(args[0])
				if err != nil {
					return "", err
				}
				to := from
				if len(args) == 2 {
					if to, err = parseLine(args[1]); err != nil {
						return "", err
					}
				}
				cc.Editor.Buffer().SelectLines(from-1, to-1)
				return "", nil
			},
		},
		{
			Name:        "write",
			Aliases:     []string{"w"},
			Description: "Write the current buffer to its file",
			Execute: func(_ context.Context, cc *CommandContext, _ []string) (string, error) {
				if err := cc.Editor.Buffer().Write(); err != nil {
					return "", err
				}
				p, _ := cc.Editor.Buffer().Path()
				return "Written " + p, nil
			},
		},
	}
	for _, cmd := range core {
		r.Register(cmd)
	}
}

// parseLine parses a 1-based line number.
func parseLine(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: invalid line number %q", ErrUsage, s)
	}
	return n, nil
}
