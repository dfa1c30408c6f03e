// ABOUTME: Fixes the lipgloss background to dark before bubbletea initializes
// ABOUTME: Import with _ ahead of any bubbletea import so no OSC color query reaches the terminal

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background, bubbletea's init skips the OSC 10/11
	// query whose late reply would land in the command line as typed text.
	// This package must not import bubbletea so that its init runs first.
	lipgloss.SetHasDarkBackground(true)
}
