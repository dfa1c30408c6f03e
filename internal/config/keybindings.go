// ABOUTME: Keybindings for the interactive command line and prompt overlay
// ABOUTME: Defaults can be overridden per action through the "keys" map in config.yaml

package config

// KeyAction represents an action that can be bound to keys
type KeyAction string

const (
	ActionAccept      KeyAction = "accept"
	ActionCancel      KeyAction = "cancel"
	ActionComplete    KeyAction = "complete"
	ActionHistoryUp   KeyAction = "historyUp"
	ActionHistoryDown KeyAction = "historyDown"
	ActionDeleteLine  KeyAction = "deleteLine"
	ActionQuit        KeyAction = "quit"
)

// Keybindings maps actions to key names as reported by bubbletea (e.g. "ctrl+c").
type Keybindings struct {
	Bindings map[KeyAction][]string
}

// RawKeybindings is the config file form: action name to key names.
type RawKeybindings map[string][]string

// NewKeybindings creates a new Keybindings with default bindings
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string),
	}
	kb.setDefaultBindings()
	return kb
}

func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionAccept] = []string{"enter"}
	kb.Bindings[ActionCancel] = []string{"esc"}
	kb.Bindings[ActionComplete] = []string{"tab"}
	kb.Bindings[ActionHistoryUp] = []string{"up", "ctrl+p"}
	kb.Bindings[ActionHistoryDown] = []string{"down", "ctrl+n"}
	kb.Bindings[ActionDeleteLine] = []string{"ctrl+u"}
	kb.Bindings[ActionQuit] = []string{"ctrl+c"}
}

// Keybindings returns the defaults with the configured overrides applied.
// Unknown action names are ignored.
func (s *Settings) Keybindings() *Keybindings {
	kb := NewKeybindings()
	for actionName, keys := range s.Keys {
		action := KeyAction(actionName)
		if _, ok := kb.Bindings[action]; ok && len(keys) > 0 {
			kb.Bindings[action] = keys
		}
	}
	return kb
}

// GetBindings returns the bindings for an action
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// Matches reports whether key is bound to action.
func (kb *Keybindings) Matches(action KeyAction, key string) bool {
	for _, k := range kb.GetBindings(action) {
		if k == key {
			return true
		}
	}
	return false
}
