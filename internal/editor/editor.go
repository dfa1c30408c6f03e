// ABOUTME: Editor state shared by commands and expansion: current buffer, working dir, status line
// ABOUTME: Workspace root is rediscovered on every call so it always reflects the current directory

package editor

import (
	"fmt"
	"os"

	"github.com/mauromedda/cmdexpand/internal/expansion"
	"github.com/mauromedda/cmdexpand/internal/git"
	"github.com/mauromedda/cmdexpand/internal/log"
	"github.com/mauromedda/cmdexpand/internal/pathutil"
)

// Severity classifies the status line message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Editor is the single-window editor model the command line operates on.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Editor struct {
	buf      *Buffer
	cwd      string
	status   string
	severity Severity
	quit     bool

	// FindWorkspace is the workspace discovery hook; defaults to git.FindWorkspace.
	FindWorkspace func(dir string) (string, bool)
}

// New creates an editor rooted at cwd with an empty scratch buffer.
func New(cwd string) *Editor {
	e := &Editor{cwd: pathutil.NormalizePath(cwd), FindWorkspace: git.FindWorkspace}
	e.buf = NewScratch("", e.WorkingDir)
	return e
}

// Buffer returns the current document.
func (e *Editor) Buffer() *Buffer { return e.buf }

// Document exposes the current buffer to expansion resolvers.
func (e *Editor) Document() expansion.Document { return e.buf }

// SetBuffer replaces the current document.
func (e *Editor) SetBuffer(b *Buffer) { e.buf = b }

// OpenFile loads path into a new current buffer.
func (e *Editor) OpenFile(path string) error {
	b, err := Open(path, e.WorkingDir)
	if err != nil {
		return err
	}
	e.buf = b
	log.Debug("opened %s", b.path)
	return nil
}

// WorkingDir returns the editor's current working directory.
func (e *Editor) WorkingDir() string { return e.cwd }

// ChangeDir switches the working directory. Relative paths resolve against
// the current one.
func (e *Editor) ChangeDir(dir string) error {
	abs := pathutil.Absolute(dir, e.cwd)
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cd %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cd %s: not a directory", dir)
	}
	e.cwd = abs
	return nil
}

// WorkspaceRoot discovers the workspace containing the working directory.
func (e *Editor) WorkspaceRoot() (string, bool) {
	if e.FindWorkspace == nil {
		return e.cwd, false
	}
	return e.FindWorkspace(e.cwd)
}

// SetStatus shows an informational message.
func (e *Editor) SetStatus(msg string) {
	e.status, e.severity = msg, SeverityInfo
}

// SetError shows an error message. The session continues.
func (e *Editor) SetError(msg string) {
	e.status, e.severity = msg, SeverityError
	log.Debug("status error: %s", msg)
}

// Status returns the current status line message and its severity.
func (e *Editor) Status() (string, Severity) { return e.status, e.severity }

// ClearStatus empties the status line.
func (e *Editor) ClearStatus() { e.status, e.severity = "", SeverityInfo }

// RequestQuit marks the session for shutdown.
func (e *Editor) RequestQuit() { e.quit = true }

// ShouldQuit reports whether a quit was requested.
func (e *Editor) ShouldQuit() bool { return e.quit }
