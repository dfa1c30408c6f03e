// ABOUTME: Lipgloss styles for the command line, prompt overlay, completion list, and status bar
// ABOUTME: Built once; the palette uses 256-color codes so it degrades on basic terminals

package interactive

import "github.com/charmbracelet/lipgloss"

// ThemeStyles holds pre-built lipgloss styles for every UI element.
type ThemeStyles struct {
	Prompt      lipgloss.Style
	PromptLabel lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style

	Selection lipgloss.Style
	Dim       lipgloss.Style
	Bold      lipgloss.Style

	Border     lipgloss.Style
	StatusPath lipgloss.Style
	StatusLine lipgloss.Style
	StatusLang lipgloss.Style
	StatusDir  lipgloss.Style
	Info       lipgloss.Style
	Error      lipgloss.Style
	Body       lipgloss.Style
}

var styles = buildStyles()

// Styles returns the shared style palette.
func Styles() ThemeStyles { return styles }

func buildStyles() ThemeStyles {
	return ThemeStyles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		PromptLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Faint(true),

		Selection: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Bold:      lipgloss.NewStyle().Bold(true),

		Border:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		StatusPath: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		StatusLine: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		StatusLang: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		StatusDir:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Info:       lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Body:       lipgloss.NewStyle(),
	}
}
