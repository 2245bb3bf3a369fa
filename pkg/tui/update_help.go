package tui

import tea "github.com/charmbracelet/bubbletea"

// updateHelp handles keys while ModeHelp is active: any key dismisses it
// back to Browse (SUPPLEMENTED FEATURES help overlay).
func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeBrowse{}
	return m, nil
}
