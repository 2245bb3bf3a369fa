package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateConfirmDelete handles keys while ModeConfirmDelete is active
// (spec.md §4.7, §6 "Tab toggles focus between Yes/No; Enter activates the
// focused choice").
func (m Model) updateConfirmDelete(msg tea.KeyMsg, mode ModeConfirmDelete) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.mode = ModeBrowse{}
		return m, nil

	case "y":
		return m.beginDelete(mode.Target)

	case "tab", "left", "right", "h", "l":
		if mode.Focus == ConfirmFocusYes {
			mode.Focus = ConfirmFocusNo
		} else {
			mode.Focus = ConfirmFocusYes
		}
		m.mode = mode
		return m, nil

	case "enter":
		if mode.Focus == ConfirmFocusYes {
			return m.beginDelete(mode.Target)
		}
		m.mode = ModeBrowse{}
		return m, nil
	}
	return m, nil
}
