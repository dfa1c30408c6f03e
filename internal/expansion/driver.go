// ABOUTME: Command re-invocation: splits the resolved line on single spaces and runs the command once
// ABOUTME: Lookup misses and command failures surface on the status line, never as fatal errors

package expansion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mauromedda/cmdexpand/internal/log"
	"github.com/mauromedda/cmdexpand/pkg/fuzzy"
)

// ErrUnknownCommand is returned when the target command is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// maxSuggestions caps "did you mean" candidates on a lookup miss.
const maxSuggestions = 3

// lister is implemented by registries that can enumerate their command names.
type lister interface {
	Names() []string
}

// Driver invokes commands with fully resolved arguments.
type Driver struct {
	Registry Registry
	Status   Status
}

// SplitArgs splits a resolved line on single spaces. Consecutive spaces
// produce empty arguments; an empty line produces no arguments.
func SplitArgs(line string) []string {
	if line == "" {
		return nil
	}
	return strings.Split(line, " ")
}

// surfacedError marks an error that is already on the status line.
type surfacedError struct{ error }

func (e surfacedError) Unwrap() error { return e.error }

// Invoke runs name with the words of line. Failures are reported through
// Status and also returned so callers can observe them. An error coming back
// from a nested invocation (an alias running another command) is returned
// as is, since its own Driver already reported it.
func (d *Driver) Invoke(ctx context.Context, name, line string) error {
	args := SplitArgs(line)
	log.Debug("constructed args for %s: %q", name, args)

	h, ok := d.Registry.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		d.report(err.Error() + d.suggest(name))
		return surfacedError{err}
	}
	if err := h.Invoke(ctx, args); err != nil {
		var nested surfacedError
		if errors.As(err, &nested) {
			return err
		}
		d.report(err.Error())
		return surfacedError{fmt.Errorf("%s: %w", name, err)}
	}
	return nil
}

func (d *Driver) report(msg string) {
	if d.Status != nil {
		d.Status.SetError(msg)
		return
	}
	log.Error("%s", msg)
}

// suggest formats close command names, or "" when none match.
func (d *Driver) suggest(name string) string {
	l, ok := d.Registry.(lister)
	if !ok {
		return ""
	}
	names := fuzzy.Suggest(name, l.Names(), maxSuggestions)
	if len(names) == 0 {
		return ""
	}
	return " (did you mean " + strings.Join(names, ", ") + "?)"
}
