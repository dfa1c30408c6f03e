// ABOUTME: Entry point for the Bubble Tea interactive command line
// ABOUTME: Creates the tea.Program and blocks until the user exits

package interactive

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive app. Blocks until the user exits.
func Run(deps AppDeps) error {
	m := NewAppModel(deps)
	defer m.sh.cancel()

	p := tea.NewProgram(
		m,
		tea.WithOutput(os.Stderr),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
