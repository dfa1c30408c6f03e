// ABOUTME: Shell execution for run-shell-command: embedded mvdan interpreter or host sh -c
// ABOUTME: Output is captured (stdout then stderr) and trimmed for the status line

package commands

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/mauromedda/cmdexpand/internal/log"
)

// Shell modes accepted by CommandContext.Shell.
const (
	ShellInterp = "interp"
	ShellExec   = "exec"
)

const shellTimeout = 30 * time.Second

// runShell executes script in dir and returns its combined output.
func runShell(ctx context.Context, mode, dir, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, shellTimeout)
	defer cancel()

	var out bytes.Buffer
	var err error
	switch mode {
	case "", ShellInterp:
		err = runInterp(ctx, dir, script, &out)
	case ShellExec:
		err = runExec(ctx, dir, script, &out)
	default:
		return "", fmt.Errorf("unknown shell mode %q", mode)
	}
	log.Debug("sh (%s) in %s: %q", mode, dir, script)

	text := strings.TrimRight(out.String(), "\n")
	if err != nil {
		if text != "" {
			return "", fmt.Errorf("%w: %s", err, text)
		}
		return "", err
	}
	return text, nil
}

func runInterp(ctx context.Context, dir, script string, out *bytes.Buffer) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	prog, err := parser.Parse(strings.NewReader(script), "")
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	runner, err := interp.New(
		interp.StdIO(nil, out, out),
		interp.Dir(dir),
	)
	if err != nil {
		return fmt.Errorf("creating shell: %w", err)
	}
	return runner.Run(ctx, prog)
}

func runExec(ctx context.Context, dir, script string, out *bytes.Buffer) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
