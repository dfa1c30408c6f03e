// ABOUTME: Tests for the typable command registry and builtin commands
// ABOUTME: Covers lookup and aliases, argument checks, editor side effects, shell output, and config aliases

package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mauromedda/cmdexpand/internal/editor"
	"github.com/mauromedda/cmdexpand/internal/expansion"
)

// testContext creates a registry over a fresh editor rooted at a temp dir.
func testContext(t *testing.T) (*Registry, *CommandContext, string) {
	t.Helper()
	dir := t.TempDir()
	ed := editor.New(dir)
	ed.FindWorkspace = func(d string) (string, bool) { return d, false }
	cc := &CommandContext{Editor: ed}
	return NewRegistry(cc), cc, dir
}

// invoke runs name through the handler returned by Lookup.
func invoke(t *testing.T, reg *Registry, name string, args ...string) error {
	t.Helper()
	h, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("command %q not found", name)
	}
	return h.Invoke(context.Background(), args)
}

func status(cc *CommandContext) string {
	s, _ := cc.Editor.Status()
	return s
}

func TestRegistry_AllCommandsRegistered(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)

	expected := []string{
		"cd", "echo", "goto", "help", "lang", "open",
		"pwd", "quit", "run-shell-command", "select", "write",
	}
	all := reg.List()
	if len(all) != len(expected) {
		t.Fatalf("expected %d commands, got %d", len(expected), len(all))
	}
	for i, cmd := range all {
		if cmd.Name != expected[i] {
			t.Errorf("List()[%d]: expected %q, got %q", i, expected[i], cmd.Name)
		}
		if cmd.Description == "" {
			t.Errorf("command %q has empty description", cmd.Name)
		}
		if cmd.Execute == nil {
			t.Errorf("command %q has nil Execute", cmd.Name)
		}
	}
}

func TestRegistry_Aliases(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)

	for alias, name := range map[string]string{
		"sh": "run-shell-command",
		"q":  "quit",
		"o":  "open",
		"w":  "write",
		"g":  "goto",
	} {
		cmd, ok := reg.Get(alias)
		if !ok || cmd.Name != name {
			t.Errorf("Get(%q) = %v, %v; want %s", alias, cmd, ok, name)
		}
	}
	names := reg.Names()
	for _, n := range []string{"sh", "run-shell-command", "q"} {
		found := false
		for _, m := range names {
			found = found || m == n
		}
		if !found {
			t.Errorf("Names() missing %q", n)
		}
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)
	if _, ok := reg.Lookup("nonexistent"); ok {
		t.Error("expected lookup miss")
	}
}

func TestRegistry_ReplaceDropsOldAliases(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)
	reg.Register(&Command{Name: "quit", Description: "x", Execute: func(context.Context, *CommandContext, []string) (string, error) {
		return "", nil
	}})
	if _, ok := reg.Get("q"); ok {
		t.Error("old alias q survived replacement")
	}
}

func TestEcho(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	if err := invoke(t, reg, "echo", "Alice", "-", "30"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := status(cc); got != "Alice - 30" {
		t.Errorf("status = %q", got)
	}
}

func TestArgumentBounds(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)

	tests := []struct {
		name string
		args []string
	}{
		{"cd", nil},
		{"cd", []string{"a", "b"}},
		{"goto", nil},
		{"goto", []string{"abc"}},
		{"goto", []string{"0"}},
		{"select", []string{"1", "2", "3"}},
		{"run-shell-command", nil},
	}
	for _, tt := range tests {
		err := invoke(t, reg, tt.name, tt.args...)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("%s %v: err = %v; want ErrUsage", tt.name, tt.args, err)
		}
	}
}

func TestCdAndPwd(t *testing.T) {
	t.Parallel()

	reg, cc, dir := testContext(t)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := invoke(t, reg, "cd", "sub"); err != nil {
		t.Fatalf("cd: %v", err)
	}
	if cc.Editor.WorkingDir() != sub {
		t.Errorf("cwd = %q; want %q", cc.Editor.WorkingDir(), sub)
	}
	if err := invoke(t, reg, "pwd"); err != nil {
		t.Fatalf("pwd: %v", err)
	}
	if got := status(cc); got != sub {
		t.Errorf("pwd status = %q", got)
	}

	if err := invoke(t, reg, "cd", "missing"); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestOpenGotoSelectWrite(t *testing.T) {
	t.Parallel()

	reg, cc, dir := testContext(t)
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := invoke(t, reg, "open", "notes.md"); err != nil {
		t.Fatalf("open: %v", err)
	}
	buf := cc.Editor.Buffer()
	if p, _ := buf.Path(); p != path {
		t.Errorf("path = %q; want %q", p, path)
	}

	if err := invoke(t, reg, "goto", "3"); err != nil {
		t.Fatalf("goto: %v", err)
	}
	if buf.CursorLine() != 2 {
		t.Errorf("cursor line = %d; want 2", buf.CursorLine())
	}

	if err := invoke(t, reg, "select", "1", "2"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := buf.SelectionText(); got != "one\ntwo\n" {
		t.Errorf("selection = %q", got)
	}

	buf.SetText("changed\n")
	if err := invoke(t, reg, "write"); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "changed\n" {
		t.Errorf("file = %q", data)
	}
}

func TestWriteScratchFails(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)
	if err := invoke(t, reg, "write"); err == nil {
		t.Error("expected error writing a scratch buffer")
	}
}

func TestLang(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)

	if err := invoke(t, reg, "lang"); err != nil {
		t.Fatal(err)
	}
	if got := status(cc); got != "Language: text" {
		t.Errorf("status = %q", got)
	}
	if err := invoke(t, reg, "lang", "toml"); err != nil {
		t.Fatal(err)
	}
	if name, _ := cc.Editor.Buffer().LanguageName(); name != "toml" {
		t.Errorf("language = %q; want toml", name)
	}
}

func TestHelpListsCommands(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	if err := invoke(t, reg, "help"); err != nil {
		t.Fatal(err)
	}
	out := status(cc)
	for _, name := range []string{"cd <dir>", "goto <line>", "run-shell-command", "quit"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %q, got:\n%s", name, out)
		}
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	exited := false
	cc.ExitFn = func() { exited = true }

	if err := invoke(t, reg, "q"); err != nil {
		t.Fatal(err)
	}
	if !cc.Editor.ShouldQuit() || !exited {
		t.Errorf("ShouldQuit = %v, exit called = %v", cc.Editor.ShouldQuit(), exited)
	}
}

func TestRunShell_Interp(t *testing.T) {
	t.Parallel()

	reg, cc, dir := testContext(t)
	if err := os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := invoke(t, reg, "sh", "echo", "hello", "world"); err != nil {
		t.Fatalf("sh: %v", err)
	}
	if got := status(cc); got != "hello world" {
		t.Errorf("status = %q", got)
	}

	// Runs in the editor's working directory.
	if err := invoke(t, reg, "sh", "test", "-f", "marker.txt", "&&", "echo", "found"); err != nil {
		t.Fatalf("sh: %v", err)
	}
	if got := status(cc); got != "found" {
		t.Errorf("status = %q", got)
	}
}

func TestRunShell_FailureCarriesOutput(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)
	err := invoke(t, reg, "sh", "echo", "boom", ";", "exit", "3")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v; want failure mentioning output", err)
	}
}

func TestRunShell_Background(t *testing.T) {
	t.Parallel()

	reg, cc, dir := testContext(t)
	var label string
	var task func(context.Context) (string, error)
	cc.Background = func(l string, fn func(context.Context) (string, error)) {
		label, task = l, fn
	}

	if err := invoke(t, reg, "sh", "pwd"); err != nil {
		t.Fatal(err)
	}
	if got := status(cc); got != "Running pwd" {
		t.Errorf("status = %q", got)
	}
	if label != "pwd" || task == nil {
		t.Fatalf("background label %q, task set %v", label, task != nil)
	}
	// The task keeps the directory it was started in.
	if err := cc.Editor.ChangeDir("/"); err != nil {
		t.Fatal(err)
	}
	out, err := task(context.Background())
	if err != nil || out != dir {
		t.Errorf("task = %q, %v; want %q", out, err, dir)
	}
}

func TestRunShell_UnknownMode(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	cc.Shell = "fish"
	if err := invoke(t, reg, "sh", "true"); err == nil || !strings.Contains(err.Error(), "unknown shell mode") {
		t.Errorf("err = %v", err)
	}
}

func TestRegisterAlias(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	type run struct {
		line string
		args []string
	}
	var runs []run
	cc.RunAlias = func(_ context.Context, line string, args []string) error {
		runs = append(runs, run{line, args})
		return nil
	}
	reg.RegisterAlias("rel", "echo %{filename:rel}")

	if err := invoke(t, reg, "rel"); err != nil {
		t.Fatal(err)
	}
	if err := invoke(t, reg, "rel", "at", "%{linenumber}"); err != nil {
		t.Fatal(err)
	}
	want := []run{
		{"echo %{filename:rel}", []string{}},
		{"echo %{filename:rel}", []string{"at", "%{linenumber}"}},
	}
	if diff := cmp.Diff(want, runs, cmpopts.EquateEmpty(), cmp.AllowUnexported(run{})); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterAlias_NilRunAlias(t *testing.T) {
	t.Parallel()

	reg, _, _ := testContext(t)
	reg.RegisterAlias("x", "echo hi")
	if err := invoke(t, reg, "x"); err == nil || !strings.Contains(err.Error(), "not available") {
		t.Errorf("err = %v", err)
	}
}

func TestRegisterAlias_PropagatesError(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	boom := errors.New("boom")
	cc.RunAlias = func(context.Context, string, []string) error { return boom }
	reg.RegisterAlias("x", "echo hi")
	if err := invoke(t, reg, "x"); !errors.Is(err, boom) {
		t.Errorf("err = %v; want boom", err)
	}
}

func TestRegisterAlias_DepthLimit(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	calls := 0
	// Every run re-enters the alias, as a self-referencing alias would.
	cc.RunAlias = func(ctx context.Context, _ string, args []string) error {
		calls++
		h, _ := reg.Lookup("loop")
		return h.Invoke(ctx, args)
	}
	reg.RegisterAlias("loop", "loop")

	err := invoke(t, reg, "loop")
	if !errors.Is(err, ErrAliasDepth) {
		t.Fatalf("err = %v; want ErrAliasDepth", err)
	}
	if calls != MaxAliasDepth {
		t.Errorf("alias ran %d times; want %d", calls, MaxAliasDepth)
	}
}

// answerPrompter answers prompts in order and cancels once it runs out.
type answerPrompter struct{ answers []string }

func (p *answerPrompter) Prompt(_ string, onSubmit func(string), onCancel func()) {
	if len(p.answers) == 0 {
		onCancel()
		return
	}
	next := p.answers[0]
	p.answers = p.answers[1:]
	onSubmit(next)
}

// withEngine wires reg to a real expansion engine the way the CLI does.
func withEngine(reg *Registry, cc *CommandContext, answers ...string) *expansion.Engine {
	eng := &expansion.Engine{
		Expander: expansion.NewExpander(),
		Prompter: &answerPrompter{answers: answers},
		Driver:   &expansion.Driver{Registry: reg, Status: cc.Editor},
	}
	cc.RunAlias = func(ctx context.Context, line string, args []string) error {
		return eng.RunLineArgs(ctx, cc.Editor, line, args).Err()
	}
	return eng
}

func TestAlias_ArgumentsAreNotExpandedTwice(t *testing.T) {
	t.Parallel()

	reg, cc, _ := testContext(t)
	eng := withEngine(reg, cc, "%{cwd}", "%{cwd}")
	reg.RegisterAlias("say", "echo")

	eng.RunLine(t.Context(), cc.Editor, "echo %{prompt x}")
	direct := status(cc)
	eng.RunLine(t.Context(), cc.Editor, "say %{prompt x}")
	viaAlias := status(cc)

	if direct != "%{cwd}" || viaAlias != "%{cwd}" {
		t.Errorf("direct = %q, alias = %q; want both %q", direct, viaAlias, "%{cwd}")
	}
}

func TestAlias_BodyIsExpandedOnce(t *testing.T) {
	t.Parallel()

	reg, cc, dir := testContext(t)
	eng := withEngine(reg, cc)
	reg.RegisterAlias("where", "echo %{cwd} -")

	eng.RunLine(t.Context(), cc.Editor, "where %{linenumber}")

	if got := status(cc); got != dir+" - 1" {
		t.Errorf("status = %q; want %q", got, dir+" - 1")
	}
}

func TestAlias_CyclesFailWithoutCrashing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		aliases map[string]string
		run     string
	}{
		{"self", map[string]string{"loop": "loop"}, "loop"},
		{"pair", map[string]string{"a": "b x", "b": "a y"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg, cc, _ := testContext(t)
			eng := withEngine(reg, cc)
			for name, line := range tt.aliases {
				reg.RegisterAlias(name, line)
			}

			p := eng.RunLine(t.Context(), cc.Editor, tt.run)

			if !errors.Is(p.Err(), ErrAliasDepth) {
				t.Errorf("Err() = %v; want ErrAliasDepth", p.Err())
			}
			msg, sev := cc.Editor.Status()
			if sev != editor.SeverityError || !strings.Contains(msg, "alias nesting too deep") {
				t.Errorf("status = %q (%v)", msg, sev)
			}
		})
	}
}
