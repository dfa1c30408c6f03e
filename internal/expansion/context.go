// ABOUTME: Collaborator interfaces consumed by the expansion engine
// ABOUTME: Document/workspace state, prompt surface, command registry, status line

// Package expansion expands %{...} tokens in editor command lines and runs the
// resulting command.
//
// A command line such as
//
//	sh rg %{prompt pattern} %{dirname}
//
// is scanned left to right. Each token resolves against the live editor
// state (document path, selection, cursor line, working directory, workspace
// root). Prompt tokens are deferred: every prompt label is collected in one
// pass, the user is asked one question at a time in source order, and the
// command runs exactly once after the last answer. Cancelling any prompt
// drops the whole invocation.
package expansion

import "context"

// Document is the read-only view of the current buffer used by resolvers.
type Document interface {
	// Path returns the absolute path of the document, if it has one.
	Path() (string, bool)
	// RelativePath returns the path relative to the working directory.
	RelativePath() (string, bool)
	// SelectionText returns the content of the primary selection.
	SelectionText() string
	// CursorLine returns the 0-based line of the primary cursor.
	CursorLine() int
	// LanguageName returns the detected language, if any.
	LanguageName() (string, bool)
}

// Context is the editor state snapshot. Implementations must read live
// state on every call; the engine never caches the results.
type Context interface {
	Document() Document
	WorkingDir() string
	// WorkspaceRoot returns the discovered workspace root and whether one was found.
	WorkspaceRoot() (string, bool)
}

// Prompter opens an interactive prompt. Exactly one of onSubmit or onCancel
// is expected to be called, from the UI event loop, once the user is done.
type Prompter interface {
	Prompt(label string, onSubmit func(answer string), onCancel func())
}

// Handler is an executable command.
type Handler interface {
	Invoke(ctx context.Context, args []string) error
}

// Registry maps command names to handlers.
type Registry interface {
	Lookup(name string) (Handler, bool)
}

// Status receives user-visible error messages.
type Status interface {
	SetError(msg string)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, args []string) error

// Invoke calls f.
func (f HandlerFunc) Invoke(ctx context.Context, args []string) error { return f(ctx, args) }
