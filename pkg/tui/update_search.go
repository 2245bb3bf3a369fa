package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/freitascorp/s3tui/pkg/nav"
	"github.com/freitascorp/s3tui/pkg/search"
)

// updateSearch handles keys while ModeSearch is active: every query edit
// re-ranks against the current snapshot (spec.md §4.6 "Each keystroke...
// recomputed synchronously").
func (m Model) updateSearch(msg tea.KeyMsg, mode ModeSearch) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeBrowse{}
		return m, nil

	case tea.KeyEnter:
		if mode.Cursor < 0 || mode.Cursor >= len(mode.Results) {
			m.mode = ModeBrowse{}
			return m, nil
		}
		key := mode.Results[mode.Cursor].Key
		m.prefix = parentPrefix(key)
		// A search jump lands on an arbitrary prefix, not one reached by
		// walking directories one at a time, so the entered-directory
		// stack no longer corresponds to this position.
		m.entryStack = nil
		m.mode = ModeBrowse{}
		m = m.refreshDerived()
		if i, ok := findRowIndex(m.view, key[len(m.prefix):]); ok {
			m.cursor = i
		} else {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyUp, tea.KeyCtrlP:
		mode.Cursor = nav.ClampCursor(mode.Cursor-1, len(mode.Results))
		m.mode = mode
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		mode.Cursor = nav.ClampCursor(mode.Cursor+1, len(mode.Results))
		m.mode = mode
		return m, nil

	case tea.KeyBackspace:
		// Empty query + backspace cancels back to Browse (spec.md §6);
		// otherwise fall through and let the textarea delete a character.
		if len(mode.Input.Value()) == 0 {
			m.mode = ModeBrowse{}
			return m, nil
		}

	case tea.KeyPgUp:
		m.listVP.HalfViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.listVP.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	mode.Input, cmd = mode.Input.Update(msg)
	mode.Query = mode.Input.Value()
	m.mode = m.rerank(mode)
	return m, cmd
}

// rerank re-ranks mode against the current index snapshot, sticking the
// cursor to its previously selected key when possible (spec.md §4.6
// "Cursor Stickiness").
func (m Model) rerank(mode ModeSearch) Mode {
	if m.idx == nil {
		mode.Results = nil
		mode.Cursor = 0
		return mode
	}
	_, snap := m.idx.Snapshot()
	prevKey := ""
	if mode.Cursor >= 0 && mode.Cursor < len(mode.Results) {
		prevKey = mode.Results[mode.Cursor].Key
	}
	mode.Results = search.Rank(snap.Keys(), mode.Query)
	mode.Cursor = search.StickCursor(mode.Results, prevKey, mode.Cursor)
	return mode
}
