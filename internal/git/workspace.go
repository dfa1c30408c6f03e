// ABOUTME: Workspace root discovery: nearest ancestor holding a VCS or project marker
// ABOUTME: Falls back to git rev-parse --show-toplevel, then to the working directory

package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const gitTimeout = 5 * time.Second

// Markers are the entries whose presence makes a directory a workspace root.
// The first ancestor (starting at the directory itself) holding any of them wins.
var Markers = []string{".git", ".jj", ".svn", ".cmdexpand"}

// FindWorkspace returns the workspace root for dir and whether one was found.
// When no root can be discovered it returns dir itself and false, so callers
// that only need "somewhere to be relative to" can ignore the flag.
func FindWorkspace(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	if root, ok := findMarker(dir); ok {
		return root, true
	}
	if root, err := RepoRoot(dir); err == nil && root != "" {
		return filepath.Clean(root), true
	}
	return dir, false
}

// findMarker walks from dir to the filesystem root looking for a marker entry.
func findMarker(dir string) (string, bool) {
	for {
		for _, m := range Markers {
			if _, err := os.Lstat(filepath.Join(dir, m)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// RepoRoot returns the repository root for the given directory
// via git rev-parse --show-toplevel.
func RepoRoot(dir string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	out, err := gitCmd(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("git repo root: %w: %s", err, strings.TrimSpace(out))
	}
	return strings.TrimSpace(out), nil
}

// gitCmd runs a read-only git command with the given context and working directory.
// Returns combined output as a string.
func gitCmd(ctx context.Context, dir string, args ...string) (string, error) {
	if len(args) == 0 || args[0] != "rev-parse" {
		return "", fmt.Errorf("git command not allowed: %v", args)
	}
	for _, a := range args[1:] {
		if !strings.HasPrefix(a, "--") || strings.ContainsAny(a, " \t\n;&|`$") {
			return "", fmt.Errorf("git argument not allowed: %q", a)
		}
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
