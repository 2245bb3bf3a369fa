package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/freitascorp/s3tui/pkg/nav"
)

// updateBrowse handles keys while Mode is ModeBrowse. Which rows they act
// on depends on Pane: the remotes list, the pre-bucket bucket list, or the
// post-bucket virtual directory view (spec.md §3 Active Pane, §4.5, §6).
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.banner = nil
		return m, nil

	case "tab":
		if m.pane == PaneRemotes {
			m.pane = PaneBrowser
		} else {
			m.pane = PaneRemotes
		}
		return m, nil

	case "?":
		m.mode = ModeHelp{}
		return m, nil
	}

	if m.pane == PaneRemotes {
		return m.updateRemotesPane(msg)
	}
	if m.bucket == "" {
		return m.updateBucketListPane(msg)
	}
	return m.updateBrowserPane(msg)
}

func (m Model) updateRemotesPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.remoteCursor = nav.ClampCursor(m.remoteCursor+1, len(m.remoteNames))
		return m, nil
	case "k", "up":
		m.remoteCursor = nav.ClampCursor(m.remoteCursor-1, len(m.remoteNames))
		return m, nil
	case "l", "enter":
		if m.remoteCursor < 0 || m.remoteCursor >= len(m.remoteNames) {
			return m, nil
		}
		return m.enterRemote(m.remoteNames[m.remoteCursor])
	}
	return m, nil
}

func (m Model) updateBucketListPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.bucketCursor = nav.ClampCursor(m.bucketCursor+1, len(m.buckets))
		return m, nil
	case "k", "up":
		m.bucketCursor = nav.ClampCursor(m.bucketCursor-1, len(m.buckets))
		return m, nil
	case "l", "enter":
		if m.bucketCursor < 0 || m.bucketCursor >= len(m.buckets) {
			return m, nil
		}
		m = m.enterBucket(m.buckets[m.bucketCursor])
		return m, nil
	case "h", "backspace":
		m.pane = PaneRemotes
		return m, nil
	case "r":
		if m.remote == "" {
			return m, nil
		}
		cmd, id := listBucketsCmd(m.transport, m.remote, m.epoch)
		m.pendingCmdID = id
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowserPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.cursor = nav.ClampCursor(m.cursor+1, m.view.Len())
		return m, nil

	case "k", "up":
		m.cursor = nav.ClampCursor(m.cursor-1, m.view.Len())
		return m, nil

	case "l", "enter":
		act, ok := nav.Enter(m.view, m.cursor)
		if !ok {
			return m, nil
		}
		if act.IsObject {
			m.mode = ModeMetadata{Key: act.ObjectKey}
			cmd, id := headObjectCmd(m.transport, m.bucket, act.ObjectKey, m.epoch)
			m.pendingCmdID = id
			return m, cmd
		}
		m.entryStack = append(m.entryStack, m.view.Entries[m.cursor].Name)
		m.prefix = act.PushPrefix
		m = m.refreshDerived()
		m.cursor = 0
		return m, nil

	case "h", "backspace":
		newPrefix, leftBucket := nav.Parent(m.prefix)
		if leftBucket {
			m = m.leaveBucket()
			return m, nil
		}
		var entered string
		if n := len(m.entryStack); n > 0 {
			entered = m.entryStack[n-1]
			m.entryStack = m.entryStack[:n-1]
		}
		m.prefix = newPrefix
		m = m.refreshDerived()
		if i, ok := findRowIndex(m.view, entered); ok {
			m.cursor = i
		} else {
			m.cursor = 0
		}
		return m, nil

	case "d":
		target, ok := m.deleteTargetAtCursor()
		if !ok {
			return m, nil
		}
		if !m.prefs.ConfirmDelete {
			return m.beginDelete(target)
		}
		m.mode = ModeConfirmDelete{Target: target, Focus: ConfirmFocusNo}
		return m, nil

	case "/", "ctrl+p":
		m.mode = newSearchMode()
		return m, textarea.Blink

	case "r":
		m = m.refresh()
		return m, nil

	case "pgup":
		m.listVP.HalfViewUp()
		return m, nil

	case "pgdown":
		m.listVP.HalfViewDown()
		return m, nil
	}
	return m, nil
}
