// ABOUTME: Tests for workspace root discovery
// ABOUTME: Uses temp directories with marker entries; exercises real git only when installed

package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// mkdirs creates nested directories under root and returns the deepest path.
func mkdirs(t *testing.T, root string, parts ...string) string {
	t.Helper()
	p := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", p, err)
	}
	return p
}

func TestFindWorkspace_GitDirMarker(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, ".git")
	deep := mkdirs(t, root, "src", "pkg")

	got, ok := FindWorkspace(deep)
	if !ok {
		t.Fatal("expected workspace to be found")
	}
	if got != root {
		t.Errorf("FindWorkspace = %q; want %q", got, root)
	}
}

func TestFindWorkspace_GitFileMarker(t *testing.T) {
	t.Parallel()

	// Linked worktrees have a .git file instead of a directory.
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: /elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deep := mkdirs(t, root, "a")

	got, ok := FindWorkspace(deep)
	if !ok || got != root {
		t.Errorf("FindWorkspace = (%q, %v); want (%q, true)", got, ok, root)
	}
}

func TestFindWorkspace_NearestMarkerWins(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	mkdirs(t, outer, ".git")
	inner := mkdirs(t, outer, "vendor", "lib")
	mkdirs(t, inner, ".cmdexpand")
	deep := mkdirs(t, inner, "x")

	got, ok := FindWorkspace(deep)
	if !ok || got != inner {
		t.Errorf("FindWorkspace = (%q, %v); want (%q, true)", got, ok, inner)
	}
}

func TestFindWorkspace_RealRepo(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}
	sub := mkdirs(t, dir, "cmd")

	got, ok := FindWorkspace(sub)
	if !ok {
		t.Fatal("expected workspace to be found")
	}
	want, _ := filepath.EvalSymlinks(dir)
	gotEval, _ := filepath.EvalSymlinks(got)
	if gotEval != want {
		t.Errorf("FindWorkspace = %q; want %q", gotEval, want)
	}
}

func TestGitCmd_RejectsNonRevParse(t *testing.T) {
	t.Parallel()

	_, err := gitCmd(t.Context(), t.TempDir(), "push", "--force")
	if err == nil || !strings.Contains(err.Error(), "not allowed") {
		t.Errorf("expected rejection, got %v", err)
	}
}

func TestGitCmd_RejectsInjectedArgument(t *testing.T) {
	t.Parallel()

	_, err := gitCmd(t.Context(), t.TempDir(), "rev-parse", "--show-toplevel; rm -rf /")
	if err == nil {
		t.Error("expected rejection of shell metacharacters")
	}
}
