// ABOUTME: Fixes the lipgloss background to dark before bubbletea initializes
// ABOUTME: Import it blank ahead of any package that imports bubbletea

package termfix

import "github.com/charmbracelet/lipgloss"

// With the background already known, bubbletea's init never sends the
// OSC 10/11 color queries whose replies would arrive as stray key input
// in the popup filters. This package must not import bubbletea.
func init() {
	lipgloss.SetHasDarkBackground(true)
}
