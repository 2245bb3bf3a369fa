package tui

import "github.com/charmbracelet/bubbles/viewport"

// remotesPaneWidth is reserved for the fixed-width remotes pane when
// sizing the scrollable list viewport alongside it.
const remotesPaneWidth = 24

// newListViewport builds the scrollable viewport backing the browser's
// virtual directory view and the search result list, the same widget the
// teacher docks its chat transcript in (pkg/tui/chat_app.go's chatView).
func newListViewport() viewport.Model {
	return viewport.New(40, 10)
}

// resizeListViewport recomputes the list viewport's dimensions from the
// terminal size, leaving room for the remotes pane, pane borders, and the
// header/status/footer chrome.
func (m Model) resizeListViewport() Model {
	w := m.width - remotesPaneWidth - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	m.listVP.Width = w
	m.listVP.Height = h
	return m
}

// syncListViewport refreshes the list viewport's content for whichever
// pane currently owns it — the search result list, or the browser's
// virtual directory view — and scrolls to keep the selected row visible.
// This runs after every Update, not from View, since viewport scroll state
// can only be persisted through the model (spec.md §4.8).
func (m Model) syncListViewport() Model {
	switch mode := m.mode.(type) {
	case ModeSearch:
		m.listVP.SetContent(searchResultLines(mode))
		m = m.ensureListCursorVisible(mode.Cursor)
	default:
		if m.bucket != "" {
			m.listVP.SetContent(browserEntryLines(m))
			m = m.ensureListCursorVisible(m.cursor)
		}
	}
	return m
}

func (m Model) ensureListCursorVisible(cursor int) Model {
	if cursor < m.listVP.YOffset {
		m.listVP.YOffset = cursor
	} else if h := m.listVP.Height; h > 0 && cursor >= m.listVP.YOffset+h {
		m.listVP.YOffset = cursor - h + 1
	}
	if m.listVP.YOffset < 0 {
		m.listVP.YOffset = 0
	}
	return m
}
