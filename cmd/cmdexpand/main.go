// ABOUTME: CLI entry point for cmdexpand: parses flags, loads config, builds the editor and engine
// ABOUTME: Runs one command, the interactive command line, or a line REPL when stdin is not a terminal

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/cmdexpand/internal/termfix"

	"golang.org/x/term"

	"github.com/mauromedda/cmdexpand/internal/commands"
	"github.com/mauromedda/cmdexpand/internal/config"
	"github.com/mauromedda/cmdexpand/internal/editor"
	"github.com/mauromedda/cmdexpand/internal/expansion"
	cxlog "github.com/mauromedda/cmdexpand/internal/log"
	"github.com/mauromedda/cmdexpand/internal/mode/interactive"
	"github.com/mauromedda/cmdexpand/internal/mode/line"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("cmdexpand %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// session is everything a mode needs to run command lines.
type session struct {
	editor   *editor.Editor
	registry *commands.Registry
	cmdCtx   *commands.CommandContext
	engine   *expansion.Engine
	settings *config.Settings
}

// run performs the initialization sequence and dispatches to the selected mode.
func run(args cliArgs) error {
	if args.verbose {
		cxlog.SetLevel(cxlog.LevelDebug)
	}

	s, err := newSession(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tty := term.IsTerminal(int(os.Stdin.Fd()))

	switch {
	case len(args.rest) > 0:
		r := line.New(line.Config{In: os.Stdin, Out: os.Stdout, ShowPrompts: tty}, s.engine, s.editor)
		return r.Run(ctx, args.rest[0], args.rest[1:])

	case tty && term.IsTerminal(int(os.Stderr.Fd())):
		restore, err := logToFile()
		if err != nil {
			cxlog.Debug("log file: %v", err)
		}
		defer restore()
		return interactive.Run(interactive.AppDeps{
			Editor:         s.editor,
			Engine:         s.engine,
			Commands:       s.registry.Names,
			CommandContext: s.cmdCtx,
			Keys:           s.settings.Keybindings(),
			ScratchName:    s.settings.ScratchName,
		})

	default:
		cfg := line.Config{In: os.Stdin, Out: os.Stdout, ShowPrompts: tty}
		if args.interactive {
			cfg.ReplPrompt = ":"
		}
		return line.New(cfg, s.engine, s.editor).Repl(ctx)
	}
}

// newSession builds the editor, loads config, and wires commands to the engine.
func newSession(args cliArgs) (*session, error) {
	cwd := args.cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		cwd = wd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cwd, err)
	}

	ed := editor.New(cwd)
	if err := ed.ChangeDir(cwd); err != nil {
		return nil, err
	}

	settings, err := loadSettings(args.config, ed)
	if err != nil {
		return nil, err
	}
	if !args.verbose && settings.LogLevel != "" {
		cxlog.SetLevel(cxlog.ParseLevel(settings.LogLevel))
	}

	if err := prepareBuffer(ed, args); err != nil {
		return nil, err
	}

	cc := &commands.CommandContext{Editor: ed, Shell: settings.Shell}
	reg := commands.NewRegistry(cc)
	names := make([]string, 0, len(settings.Aliases))
	for name := range settings.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, exists := reg.Get(name); exists {
			cxlog.Warn("alias %s shadows a builtin command", name)
		}
		reg.RegisterAlias(name, settings.Aliases[name])
	}

	eng := &expansion.Engine{
		Expander:     expansion.NewExpander(expansion.WithScratchName(settings.ScratchName)),
		Driver:       &expansion.Driver{Registry: reg, Status: ed},
		PromptSuffix: settings.PromptSuffix,
	}
	cc.RunAlias = func(ctx context.Context, line string, args []string) error {
		return eng.RunLineArgs(ctx, ed, line, args).Err()
	}

	return &session{editor: ed, registry: reg, cmdCtx: cc, engine: eng, settings: settings}, nil
}

func loadSettings(path string, ed *editor.Editor) (*config.Settings, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	root, _ := ed.WorkspaceRoot()
	return config.Load(root)
}

// prepareBuffer applies -file, -line, -select, and -lang.
func prepareBuffer(ed *editor.Editor, args cliArgs) error {
	if args.file != "" {
		if err := ed.OpenFile(args.file); err != nil {
			return err
		}
	}
	buf := ed.Buffer()
	if args.line > 0 {
		buf.GotoLine(args.line - 1)
	}
	if args.selection != "" {
		from, to, err := parseSelection(args.selection)
		if err != nil {
			return err
		}
		buf.SelectLines(from-1, to-1)
	}
	if args.lang != "" {
		buf.SetLanguage(args.lang)
	}
	return nil
}

// logToFile redirects diagnostics to ~/.cmdexpand/cmdexpand.log while the
// TUI owns the terminal. The returned func restores the previous output.
func logToFile() (func(), error) {
	dir := config.GlobalDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		prev := cxlog.SetOutput(io.Discard)
		return func() { cxlog.SetOutput(prev) }, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "cmdexpand.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		prev := cxlog.SetOutput(io.Discard)
		return func() { cxlog.SetOutput(prev) }, err
	}
	prev := cxlog.SetOutput(f)
	return func() {
		cxlog.SetOutput(prev)
		f.Close()
	}, nil
}
