// ABOUTME: Root AppModel for the interactive command line: input, prompt routing, completion, status bar
// ABOUTME: Expansion runs inside Update; prompts opened by the engine take over the input until answered

package interactive

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/cmdexpand/internal/commands"
	"github.com/mauromedda/cmdexpand/internal/config"
	"github.com/mauromedda/cmdexpand/internal/editor"
	"github.com/mauromedda/cmdexpand/internal/expansion"
)

const (
	commandPrompt = ":"
	placeholder   = "type a command, tab to complete"
)

// AppDeps bundles all dependencies for the interactive app.
type AppDeps struct {
	Editor *editor.Editor
	// Engine's Prompter is replaced by the app's Prompt.
	Engine *expansion.Engine
	// Commands lists completable command names. Nilable.
	Commands func() []string
	// CommandContext gets the app's background runner so slow commands
	// finish in a tea.Cmd. Nilable.
	CommandContext *commands.CommandContext

	Keys        *config.Keybindings
	ScratchName string
}

// shared holds state that must survive AppModel value copies.
// Bubble Tea copies the model on each Update; pointer fields are shared.
type shared struct {
	prompt *Prompt
	ctx    context.Context
	cancel context.CancelFunc
	tasks  []backgroundTask
}

// backgroundTask is slow command work queued during Update.
type backgroundTask struct {
	label string
	run   func(ctx context.Context) (string, error)
}

// backgroundDoneMsg carries the result of a backgroundTask back to Update.
type backgroundDoneMsg struct {
	label string
	out   string
	err   error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sh   *shared
	deps AppDeps

	input   InputModel
	status  StatusBarModel
	overlay tea.Model // CompletionModel or nil
	target  completionTarget
	after   string // text right of the cursor when completion opened

	history []string
	histIdx int

	width, height int
	cachedSep     string
}

// NewAppModel creates an AppModel and installs its Prompt on deps.Engine.
func NewAppModel(deps AppDeps) AppModel {
	ctx, cancel := context.WithCancel(context.Background())
	if deps.Keys == nil {
		deps.Keys = config.NewKeybindings()
	}
	if deps.ScratchName == "" {
		deps.ScratchName = expansion.DefaultScratchName
	}
	sh := &shared{prompt: &Prompt{}, ctx: ctx, cancel: cancel}
	deps.Engine.Prompter = sh.prompt
	if deps.CommandContext != nil {
		deps.CommandContext.Background = func(label string, task func(context.Context) (string, error)) {
			sh.tasks = append(sh.tasks, backgroundTask{label: label, run: task})
		}
	}

	m := AppModel{
		sh:   sh,
		deps: deps,
		input: NewInputModel().
			SetPrompt(Styles().Prompt.Render(commandPrompt)).
			SetPlaceholder(placeholder),
		status: NewStatusBarModel(),
	}
	return m.refresh()
}

// Init returns no startup commands.
func (m AppModel) Init() tea.Cmd { return nil }

// Update routes messages to the appropriate handler.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cachedSep = strings.Repeat("─", msg.Width)
		updated, _ := m.status.Update(msg)
		m.status = updated.(StatusBarModel)
		updatedIn, _ := m.input.Update(msg)
		m.input = updatedIn.(InputModel)
		if m.overlay != nil {
			m.overlay, _ = m.overlay.Update(msg)
		}
		return m, nil

	case CompletionSelectMsg:
		m.overlay = nil
		m.applyCompletion(msg.Text)
		return m, nil

	case CompletionDismissMsg:
		m.overlay = nil
		return m, nil

	case backgroundDoneMsg:
		switch {
		case msg.err != nil:
			m.deps.Editor.SetError(fmt.Sprintf("%s: %v", msg.label, msg.err))
		case msg.out != "":
			m.deps.Editor.SetStatus(msg.out)
		default:
			m.deps.Editor.ClearStatus()
		}
		return m.refresh(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	keys := m.deps.Keys

	if keys.Matches(config.ActionQuit, key) {
		return m.quit()
	}
	if m.overlay != nil {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	switch {
	case keys.Matches(config.ActionAccept, key):
		return m.submit()

	case keys.Matches(config.ActionCancel, key):
		m.input = m.input.SetText("")
		if m.sh.prompt.Open() {
			m.sh.prompt.Cancel()
		} else {
			m.deps.Editor.ClearStatus()
		}
		return m.refresh(), nil

	case m.sh.prompt.Open():
		// Prompt answers get plain editing only.

	case keys.Matches(config.ActionComplete, key):
		return m.openCompletion(), nil

	case keys.Matches(config.ActionHistoryUp, key):
		return m.recall(-1), nil

	case keys.Matches(config.ActionHistoryDown, key):
		return m.recall(1), nil
	}

	if keys.Matches(config.ActionDeleteLine, key) {
		m.input = m.input.SetText("")
		return m, nil
	}
	updated, _ := m.input.Update(msg)
	m.input = updated.(InputModel)
	return m, nil
}

// submit answers the open prompt, or runs the command line.
func (m AppModel) submit() (tea.Model, tea.Cmd) {
	text := m.input.Text()
	m.input = m.input.SetText("")

	if m.sh.prompt.Open() {
		m.sh.prompt.Submit(text)
	} else {
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.history = append(m.history, text)
		m.histIdx = len(m.history)
		m.deps.Editor.ClearStatus()
		m.deps.Engine.RunLine(m.sh.ctx, m.deps.Editor, text)
	}

	m = m.refresh()
	if m.deps.Editor.ShouldQuit() {
		return m.quit()
	}
	return m, m.startTasks()
}

// startTasks turns work queued by commands into tea.Cmds.
func (m AppModel) startTasks() tea.Cmd {
	tasks := m.sh.tasks
	m.sh.tasks = nil
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, t := range tasks {
		ctx := m.sh.ctx
		cmds = append(cmds, func() tea.Msg {
			out, err := t.run(ctx)
			return backgroundDoneMsg{label: t.label, out: out, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	if m.deps.Engine.State() == expansion.StateAwaitingPrompt {
		m.deps.Engine.Active().Cancel()
	}
	m.sh.cancel()
	return m, tea.Quit
}

// refresh syncs the input prompt and status bar with engine and editor state.
func (m AppModel) refresh() AppModel {
	s := Styles()
	if m.sh.prompt.Open() {
		m.input = m.input.SetPrompt(s.PromptLabel.Render(m.promptLabel())).SetPlaceholder("")
	} else {
		m.input = m.input.SetPrompt(s.Prompt.Render(commandPrompt)).SetPlaceholder(placeholder)
	}
	m.status = m.status.Refresh(m.deps.Editor, m.deps.ScratchName)
	return m
}

// promptLabel prefixes the open prompt with its position when a line asks
// more than one question.
func (m AppModel) promptLabel() string {
	label := m.sh.prompt.Label()
	p := m.deps.Engine.Active()
	if p == nil {
		return label
	}
	if n := len(p.Labels()); n > 1 {
		return fmt.Sprintf("(%d/%d) %s", len(p.Answers())+1, n, label)
	}
	return label
}

func (m AppModel) openCompletion() AppModel {
	before := m.input.BeforeCursor()
	target, ok := findTarget(before)
	if !ok {
		return m
	}
	var items []string
	if target.keyword {
		items = m.deps.Engine.Expander.Keywords()
	} else if m.deps.Commands != nil {
		items = m.deps.Commands()
	}
	candidates := rankCandidates(target.word, items)
	m.target = target
	m.after = strings.TrimPrefix(m.input.Text(), before)

	switch len(candidates) {
	case 0:
		return m
	case 1:
		m.applyCompletion(candidates[0])
		return m
	}
	c := NewCompletionModel(candidates)
	updated, _ := c.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.overlay = updated
	return m
}

func (m *AppModel) applyCompletion(choice string) {
	text := m.target.prefix + choice
	if m.target.keyword {
		if !strings.HasPrefix(m.after, "}") {
			text += "}"
		}
	} else if !strings.HasPrefix(m.after, " ") {
		text += " "
	}
	m.input = m.input.SetText(text + m.after)
}

// recall walks command history; moving past the newest entry clears the input.
func (m AppModel) recall(delta int) AppModel {
	if len(m.history) == 0 {
		return m
	}
	m.histIdx = max(0, min(len(m.history), m.histIdx+delta))
	if m.histIdx == len(m.history) {
		m.input = m.input.SetText("")
	} else {
		m.input = m.input.SetText(m.history[m.histIdx])
	}
	return m
}

// View renders the body, command line, status bar, and completion list.
func (m AppModel) View() string {
	s := Styles()
	var sections []string

	if msg, _ := m.deps.Editor.Status(); strings.Contains(msg, "\n") {
		sections = append(sections, s.Body.Render(msg))
	}
	sections = append(sections,
		s.Border.Render(m.cachedSep),
		m.input.View(),
		s.Border.Render(m.cachedSep),
		m.status.View(),
	)
	main := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.overlay != nil {
		if v := m.overlay.View(); v != "" {
			return main + "\n" + v
		}
	}
	return main
}
