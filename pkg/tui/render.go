package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(PrimaryText.Render("s3tui"))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	switch mode := m.mode.(type) {
	case ModeHelp:
		b.WriteString(m.renderHelp())
	case ModeMetadata:
		b.WriteString(m.renderPanes())
		b.WriteString("\n\n")
		b.WriteString(m.renderMetadata(mode))
	case ModeSearch:
		b.WriteString(m.renderSearch(mode))
	case ModeConfirmDelete:
		b.WriteString(m.renderPanes())
		b.WriteString("\n\n")
		b.WriteString(m.renderConfirmDelete(mode))
	default:
		b.WriteString(m.renderPanes())
	}

	if m.banner != nil {
		b.WriteString("\n\n")
		style := bannerStyle[m.banner.Kind]
		line := m.banner.Message
		if m.banner.Detail != "" {
			line += ": " + m.banner.Detail
		}
		b.WriteString(style.Render(line))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(" Tab: pane  j/k: move  l/Enter: open  h: back  /: search  d: delete  r: refresh  PgUp/PgDn: scroll  ?: help  q: quit "))
	return b.String()
}

func (m Model) statusLine() string {
	remote := m.remote
	if remote == "" {
		remote = "(no remote)"
	}
	bucket := m.bucket
	if bucket == "" {
		bucket = "(no bucket)"
	}
	status := fmt.Sprintf("%s / %s / %s", remote, bucket, m.prefix)
	if m.idx != nil {
		seq, snap := m.idx.Snapshot()
		progress := fmt.Sprintf("%d keys indexed", snap.Len())
		if snap.Complete {
			progress += ", complete"
		} else {
			progress += fmt.Sprintf(", in progress (seq %d)", seq)
		}
		status += "  " + MutedText.Render(progress)
	}
	if m.pendingCmdID != "" {
		status += "  " + MutedText.Render("request "+m.pendingCmdID[:8]+" in flight")
	}
	return status
}

func (m Model) renderPanes() string {
	remotesPane := m.renderRemotesPane()
	var rightPane string
	if m.bucket == "" {
		rightPane = m.renderBucketListPane()
	} else {
		rightPane = m.renderBrowserPane()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, remotesPane, rightPane)
}

func (m Model) renderRemotesPane() string {
	style := paneStyle
	if m.pane == PaneRemotes {
		style = paneFocusedStyle
	}
	var b strings.Builder
	b.WriteString(AccentText.Render("Remotes"))
	b.WriteString("\n")
	if len(m.remoteNames) == 0 {
		b.WriteString(MutedText.Render("(none configured)"))
	}
	for i, name := range m.remoteNames {
		if i == m.remoteCursor {
			b.WriteString(cursorRowStyle.Render("> " + name))
		} else {
			b.WriteString(NormalText.Render("  " + name))
		}
		b.WriteString("\n")
	}
	return style.Render(b.String())
}

func (m Model) renderBucketListPane() string {
	style := paneStyle
	if m.pane == PaneBrowser {
		style = paneFocusedStyle
	}
	var b strings.Builder
	b.WriteString(AccentText.Render("Buckets"))
	b.WriteString("\n")
	if m.remote == "" {
		b.WriteString(MutedText.Render("(select a remote)"))
	} else if len(m.buckets) == 0 {
		b.WriteString(MutedText.Render("(loading...)"))
	}
	for i, name := range m.buckets {
		if i == m.bucketCursor {
			b.WriteString(cursorRowStyle.Render("> " + name))
		} else {
			b.WriteString(NormalText.Render("  " + name))
		}
		b.WriteString("\n")
	}
	return style.Render(b.String())
}

func (m Model) renderBrowserPane() string {
	style := paneStyle
	if m.pane == PaneBrowser {
		style = paneFocusedStyle
	}
	var b strings.Builder
	b.WriteString(AccentText.Render("Browser"))
	b.WriteString("\n")
	b.WriteString(m.listVP.View())
	return style.Render(b.String())
}

// browserEntryLines renders the browser pane's rows; it is computed in
// syncListViewport (on Update) and handed to the viewport via SetContent,
// not built directly in View, since the viewport owns the scroll offset.
func browserEntryLines(m Model) string {
	if m.view.Len() == 0 {
		return MutedText.Render("(empty)")
	}
	var b strings.Builder
	for i, e := range m.view.Entries {
		name := e.Name
		rowStyle := NormalText
		if e.IsDir {
			name += "/"
			rowStyle = dirRowStyle
		}
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
			rowStyle = cursorRowStyle
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(rowStyle.Render(prefix + name))
	}
	return b.String()
}

func (m Model) renderSearch(mode ModeSearch) string {
	var b strings.Builder
	b.WriteString(AccentText.Render("Search"))
	b.WriteString("\n")
	b.WriteString(mode.Input.View())
	b.WriteString("\n\n")
	b.WriteString(m.listVP.View())
	return paneFocusedStyle.Render(b.String())
}

// searchResultLines renders the search result list; see browserEntryLines.
func searchResultLines(mode ModeSearch) string {
	if len(mode.Results) == 0 {
		return MutedText.Render("(no matches)")
	}
	var b strings.Builder
	for i, r := range mode.Results {
		rowStyle := NormalText
		prefix := "  "
		if i == mode.Cursor {
			prefix = "> "
			rowStyle = cursorRowStyle
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(rowStyle.Render(prefix + r.Key))
	}
	return b.String()
}

func (m Model) renderMetadata(mode ModeMetadata) string {
	var b strings.Builder
	b.WriteString(AccentText.Render("Metadata: " + mode.Key))
	b.WriteString("\n")
	if !mode.Fetched {
		b.WriteString(MutedText.Render("(loading...)"))
	} else {
		b.WriteString(fmt.Sprintf("size: %s (%d bytes)\n", humanize.Bytes(uint64(mode.Meta.SizeBytes)), mode.Meta.SizeBytes))
		b.WriteString(fmt.Sprintf("content-type: %s\n", mode.Meta.ContentType))
		if mode.Meta.HasModified {
			b.WriteString(fmt.Sprintf("last-modified: %s (%s)\n", humanize.Time(mode.Meta.LastModified), mode.Meta.LastModified))
		}
		b.WriteString(fmt.Sprintf("etag: %s\n", mode.Meta.ETag))
		for k, v := range mode.Meta.UserMetadata {
			b.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}
	return confirmBoxStyle.Render(b.String())
}

func (m Model) renderConfirmDelete(mode ModeConfirmDelete) string {
	kind := "object"
	if mode.Target.IsPrefix {
		kind = "prefix"
	}
	var b strings.Builder
	b.WriteString(WarnText.Render(fmt.Sprintf("Delete %s %q?", kind, mode.Target.Key)))
	b.WriteString("\n\n")

	yes, no := confirmOptionStyle, confirmOptionStyle
	if mode.Focus == ConfirmFocusYes {
		yes = confirmOptionFocusedStyle
	} else {
		no = confirmOptionFocusedStyle
	}
	b.WriteString(yes.Render("[ Yes ]"))
	b.WriteString("  ")
	b.WriteString(no.Render("[ No ]"))
	return confirmBoxStyle.Render(b.String())
}

const helpMarkdown = `
# s3tui keys

| Key | Action |
|---|---|
| j / down | move cursor down |
| k / up | move cursor up |
| l / Enter | open directory or object |
| h / Backspace | go to parent / leave bucket |
| Tab | switch active pane |
| / or Ctrl+P | start search |
| d | delete selected item |
| r | refresh (restart indexer) |
| ? | toggle this help |
| q | quit |
| Esc | dismiss banner / cancel |
`

func (m Model) renderHelp() string {
	rendered, err := glamour.Render(helpMarkdown, "dark")
	if err != nil {
		rendered = helpMarkdown
	}
	var b strings.Builder
	b.WriteString(rendered)
	b.WriteString("\n")
	b.WriteString(AccentText.Render("Recent log lines"))
	b.WriteString("\n")
	if m.ring != nil {
		for _, e := range m.ring.Snapshot(10) {
			b.WriteString(MutedText.Render(fmt.Sprintf("[%s] %s", e.Level, e.Message)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
