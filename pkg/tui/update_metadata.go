package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateMetadata handles keys while ModeMetadata is active. Any key other
// than the dismiss keys is ignored — the panel is read-only (spec.md §3
// "Object Metadata").
func (m Model) updateMetadata(msg tea.KeyMsg, mode ModeMetadata) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.mode = ModeBrowse{}
		return m, nil
	}
	return m, nil
}
