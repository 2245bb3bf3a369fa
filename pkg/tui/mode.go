package tui

import (
	"github.com/charmbracelet/bubbles/textarea"

	"github.com/freitascorp/s3tui/pkg/delete"
	"github.com/freitascorp/s3tui/pkg/s3client"
	"github.com/freitascorp/s3tui/pkg/search"
)

// Mode is the tagged-variant UI mode of spec.md §3: exactly one is active
// on the model at a time. Concrete types are switched on with a Go type
// switch in Update, the same way the teacher switches on concrete tea.Msg
// types.
type Mode interface {
	modeTag()
}

// ModeBrowse is the initial mode and the one every other mode returns to
// (spec.md §3 "Browse is the initial mode after a bucket is entered").
type ModeBrowse struct{}

func (ModeBrowse) modeTag() {}

// ModeSearch holds the query editor, ranked results, and result-list
// cursor (spec.md §4.6). Input is a single-line bubbles/textarea, the same
// widget the teacher docks at the bottom of pkg/tui/chat_app.go, configured
// here for a one-line query instead of a growable chat message.
type ModeSearch struct {
	Input   textarea.Model
	Query   string
	Cursor  int
	Results []search.Result
}

func (ModeSearch) modeTag() {}

// newSearchMode builds a freshly focused ModeSearch, ready to receive
// keystrokes.
func newSearchMode() ModeSearch {
	ti := textarea.New()
	ti.Placeholder = "search keys"
	ti.CharLimit = 0
	ti.SetHeight(1)
	ti.ShowLineNumbers = false
	ti.Focus()
	return ModeSearch{Input: ti}
}

// ModeMetadata holds the key under inspection and, once the head-object
// call resolves, its metadata (spec.md §3 "Object Metadata... held only
// while the metadata panel is open").
type ModeMetadata struct {
	Key     string
	Fetched bool
	Meta    s3client.ObjectMetadata
}

func (ModeMetadata) modeTag() {}

// ModeConfirmDelete holds the pending delete target and which choice has
// focus (spec.md §4.7, §6 "Tab toggles focus between Yes/No").
type ModeConfirmDelete struct {
	Target delete.Target
	Focus  ConfirmChoice
}

func (ModeConfirmDelete) modeTag() {}

// ConfirmChoice is the focused option in ConfirmDelete.
type ConfirmChoice int

const (
	ConfirmFocusYes ConfirmChoice = iota
	ConfirmFocusNo
)

// ModeHelp shows the static key-binding reference (SUPPLEMENTED FEATURES).
type ModeHelp struct{}

func (ModeHelp) modeTag() {}

// BannerKind tags the error/status overlay kind (spec.md §7). Banners are
// orthogonal to Mode: they render on top of whichever mode is active and
// dismiss via Esc without changing it, which is how this implementation
// resolves the Mode table's separately-listed "Error" row (see DESIGN.md).
type BannerKind string

const (
	BannerNetwork         BannerKind = "network"
	BannerAccessDenied    BannerKind = "access_denied"
	BannerNotFound        BannerKind = "not_found"
	BannerPartialDelete   BannerKind = "partial_delete"
	BannerIndexIncomplete BannerKind = "index_incomplete"
	BannerInfo            BannerKind = "info"
)

// Banner is the dismissible overlay line spec.md §7 describes.
type Banner struct {
	Kind    BannerKind
	Message string
	Detail  string
}

// Pane is the active pane within Browse mode (spec.md §3 "Active Pane...
// independent of mode; controls which pane key events target in Browse").
type Pane int

const (
	PaneRemotes Pane = iota
	PaneBrowser
)
