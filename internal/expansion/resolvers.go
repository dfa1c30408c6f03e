// ABOUTME: Resolver table mapping expansion keywords to editor-state lookups
// ABOUTME: basename, filename(:rel/:git_rel), dirname, git_repo, cwd, linenumber, lang, ext, selection, prompt

package expansion

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mauromedda/cmdexpand/internal/pathutil"
)

// DefaultScratchName labels documents that have no path.
const DefaultScratchName = "[scratch]"

// Resolver turns one expansion candidate into text. args are the words that
// followed the keyword.
type Resolver func(env *Env, args []string) string

// Env is what a resolver sees during one scan pass.
type Env struct {
	Context
	// ScratchName stands in for the path of an unnamed document.
	ScratchName string

	prompts *promptPass
}

// DefaultResolvers returns a fresh copy of the builtin resolver table.
func DefaultResolvers() map[string]Resolver {
	return map[string]Resolver{
		"basename":         resolveBasename,
		"filename":         resolveFilename,
		"filename:rel":     resolveFilenameRel,
		"filename:git_rel": resolveFilenameGitRel,
		"dirname":          resolveDirname,
		"git_repo":         resolveGitRepo,
		"cwd":              resolveCwd,
		"linenumber":       resolveLineNumber,
		"lang":             resolveLang,
		"ext":              resolveExt,
		"selection":        resolveSelection,
		"prompt":           resolvePrompt,
	}
}

func resolveBasename(env *Env, _ []string) string {
	if p, ok := env.Document().Path(); ok {
		return filepath.Base(p)
	}
	return env.ScratchName
}

func resolveFilename(env *Env, _ []string) string {
	if p, ok := env.Document().Path(); ok {
		return p
	}
	return env.ScratchName
}

func resolveFilenameRel(env *Env, _ []string) string {
	p, ok := env.Document().Path()
	if !ok {
		return env.ScratchName
	}
	return relativeTo(p, env.WorkingDir())
}

func resolveFilenameGitRel(env *Env, _ []string) string {
	p, ok := env.Document().Path()
	if !ok {
		return env.ScratchName
	}
	root, found := env.WorkspaceRoot()
	if !found {
		root = env.WorkingDir()
	}
	return relativeTo(p, root)
}

// relativeTo strips base from p. A path equal to base becomes "" and a path
// outside base is returned unchanged.
func relativeTo(p, base string) string {
	if rel, ok := pathutil.StripPrefix(p, base); ok {
		return rel
	}
	if base != "" && pathutil.NormalizePath(p) == pathutil.NormalizePath(base) {
		return ""
	}
	return p
}

func resolveDirname(env *Env, _ []string) string {
	if p, ok := env.Document().Path(); ok {
		return filepath.Dir(p)
	}
	return env.ScratchName
}

func resolveGitRepo(env *Env, _ []string) string {
	if root, ok := env.WorkspaceRoot(); ok {
		return root
	}
	return ""
}

func resolveCwd(env *Env, _ []string) string {
	return env.WorkingDir()
}

func resolveLineNumber(env *Env, _ []string) string {
	return strconv.Itoa(env.Document().CursorLine() + 1)
}

func resolveLang(env *Env, _ []string) string {
	if name, ok := env.Document().LanguageName(); ok && name != "" {
		return name
	}
	return "text"
}

func resolveExt(env *Env, _ []string) string {
	rel, ok := env.Document().RelativePath()
	if !ok {
		return ""
	}
	base := filepath.Base(rel)
	ext := filepath.Ext(base)
	if ext == base {
		// dotfiles such as ".bashrc" have no extension
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

func resolveSelection(env *Env, _ []string) string {
	return env.Document().SelectionText()
}

// resolvePrompt never blocks. It records the label and yields either the
// answer already given for this prompt slot or the placeholder marker.
func resolvePrompt(env *Env, args []string) string {
	return env.prompts.next(strings.Join(args, " "))
}
