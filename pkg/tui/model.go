package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/freitascorp/s3tui/pkg/config"
	"github.com/freitascorp/s3tui/pkg/delete"
	"github.com/freitascorp/s3tui/pkg/index"
	"github.com/freitascorp/s3tui/pkg/indexer"
	"github.com/freitascorp/s3tui/pkg/logging"
	"github.com/freitascorp/s3tui/pkg/nav"
	"github.com/freitascorp/s3tui/pkg/s3client"
	"github.com/freitascorp/s3tui/pkg/search"
)

// Model is the bubbletea model for the whole program: one process, one
// terminal, one operator (spec.md §1). It follows the teacher's
// value-receiver Elm style (FleetDashboard, ChatApp) rather than a pointer
// receiver. Pointer fields are shared by every Model copy; among them the
// independently synchronized index.Index and indexer.Task intentionally
// outlive any single copy.
type Model struct {
	logger   *slog.Logger
	ring     *logging.Ring
	registry *s3client.Registry
	prefs    config.Preferences

	width, height int

	pane         Pane
	remoteNames  []string
	remoteCursor int

	remote    string
	transport s3client.Transport
	bucket    string
	buckets   []string
	bucketCursor int

	idx     *index.Index
	task    *indexer.Task
	epoch   uint64
	lastSeq uint64

	prefix     string
	view       nav.View
	cursor     int
	entryStack []string
	listVP     viewport.Model

	mode   Mode
	banner *Banner

	pendingCmdID string

	quitting bool

	initialRemote string
	initialBucket string
}

// New builds the initial model: focus starts on the remotes pane, no
// remote or bucket selected yet (spec.md §3 Active Pane / Navigation
// cursor). initialRemote/initialBucket implement the CLI entrypoint's
// `s3tui <remote>` and `s3tui <remote> <bucket>` invocation forms, which
// skip straight past the remote (and bucket) pickers.
func New(logger *slog.Logger, ring *logging.Ring, registry *s3client.Registry, prefs config.Preferences, initialRemote, initialBucket string) Model {
	m := Model{
		logger:        logger,
		ring:          ring,
		registry:      registry,
		prefs:         prefs,
		pane:          PaneRemotes,
		remoteNames:   registry.ListRemotes(),
		mode:          ModeBrowse{},
		listVP:        newListViewport(),
		initialRemote: initialRemote,
		initialBucket: initialBucket,
	}
	if prefs.DefaultRemote != "" {
		for i, n := range m.remoteNames {
			if n == prefs.DefaultRemote {
				m.remoteCursor = i
			}
		}
	}
	// Probe the terminal size up front so the first frame, rendered before
	// bubbletea's first WindowSizeMsg arrives, isn't drawn at 0x0.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
	}
	m = m.resizeListViewport()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.initialRemote != "" {
		return tea.Batch(tickCmd(), bootstrapCmd(m.initialRemote, m.initialBucket))
	}
	return tickCmd()
}

// Update delegates to update and then re-syncs the list viewport's content
// and scroll offset, since that state can only be persisted here — View is
// a pure function of Model and cannot write back to it (spec.md §4.8).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	nm, cmd := m.update(msg)
	nm = nm.syncListViewport()
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m = m.resizeListViewport()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		res, cmd := m.handleKey(msg)
		return res.(Model), cmd

	case tickMsg:
		if m.idx != nil {
			if seq := m.idx.Seq(); seq != m.lastSeq {
				m.lastSeq = seq
				m = m.refreshDerived()
			}
		}
		if m.quitting {
			return m, nil
		}
		return m, tickCmd()

	case bucketsMsg:
		if msg.cmdID == m.pendingCmdID {
			m.pendingCmdID = ""
		}
		if msg.epoch != m.epoch || msg.remote != m.remote {
			m.logDebug("discarding stale result", "kind", "buckets", "result_epoch", msg.epoch, "current_epoch", m.epoch)
			return m, nil
		}
		if msg.err != nil {
			m.banner = &Banner{Kind: classifyBannerKind(msg.err), Message: "list buckets failed", Detail: msg.err.Error()}
			return m, nil
		}
		m.buckets = append([]string(nil), msg.buckets...)
		sort.Strings(m.buckets)
		m.bucketCursor = nav.ClampCursor(m.bucketCursor, len(m.buckets))
		return m, nil

	case headObjectMsg:
		if msg.cmdID == m.pendingCmdID {
			m.pendingCmdID = ""
		}
		if msg.epoch != m.epoch {
			m.logDebug("discarding stale result", "kind", "head_object", "key", msg.key, "result_epoch", msg.epoch, "current_epoch", m.epoch)
			return m, nil
		}
		md, ok := m.mode.(ModeMetadata)
		if !ok || md.Key != msg.key {
			return m, nil
		}
		if msg.err != nil {
			m.banner = &Banner{Kind: classifyBannerKind(msg.err), Message: "head-object failed: " + msg.key, Detail: msg.err.Error()}
			m.mode = ModeBrowse{}
			return m, nil
		}
		md.Fetched = true
		md.Meta = msg.meta
		m.mode = md
		return m, nil

	case deleteDoneMsg:
		if msg.cmdID == m.pendingCmdID {
			m.pendingCmdID = ""
		}
		if msg.epoch != m.epoch {
			m.logDebug("discarding stale result", "kind", "delete", "target", msg.target.Key, "result_epoch", msg.epoch, "current_epoch", m.epoch)
			return m, nil
		}
		return m.applyDeleteResult(msg), nil

	case bootstrapMsg:
		if msg.remote == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.enterRemote(msg.remote)
		if msg.bucket == "" || m.transport == nil {
			return m, cmd
		}
		m = m.enterBucket(msg.bucket)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch mode := m.mode.(type) {
	case ModeSearch:
		return m.updateSearch(msg, mode)
	case ModeMetadata:
		return m.updateMetadata(msg, mode)
	case ModeConfirmDelete:
		return m.updateConfirmDelete(msg, mode)
	case ModeHelp:
		return m.updateHelp(msg)
	default:
		return m.updateBrowse(msg)
	}
}

// refreshDerived re-derives whatever view depends on the index's current
// contents: the search result list if Search is active, otherwise the
// browser's virtual directory view (spec.md §4.8.4, §4.5, §4.6).
func (m Model) refreshDerived() Model {
	if m.idx == nil {
		return m
	}
	_, snap := m.idx.Snapshot()

	if s, ok := m.mode.(ModeSearch); ok {
		prevKey := ""
		if s.Cursor >= 0 && s.Cursor < len(s.Results) {
			prevKey = s.Results[s.Cursor].Key
		}
		s.Results = search.Rank(snap.Keys(), s.Query)
		s.Cursor = search.StickCursor(s.Results, prevKey, s.Cursor)
		m.mode = s
	} else {
		m.view = nav.Derive(snap.Keys(), m.prefix)
		m.cursor = nav.ClampCursor(m.cursor, m.view.Len())
	}

	if snap.Err != nil && m.banner == nil {
		m.banner = &Banner{Kind: BannerNetwork, Message: "indexer stopped", Detail: snap.Err.Error()}
	}
	return m
}

// enterRemote selects a remote, discards any previous bucket context, and
// fetches its bucket list (SUPPLEMENTED FEATURES bucket-list screen).
func (m Model) enterRemote(name string) (Model, tea.Cmd) {
	m = m.leaveBucket()
	transport, err := m.registry.ClientFor(name)
	if err != nil {
		m.banner = &Banner{Kind: BannerAccessDenied, Message: "cannot use remote " + name, Detail: err.Error()}
		return m, nil
	}
	m.epoch++
	m.remote = name
	m.transport = transport
	m.buckets = nil
	m.bucketCursor = 0
	m.pane = PaneBrowser
	cmd, id := listBucketsCmd(transport, name, m.epoch)
	m.pendingCmdID = id
	return m, cmd
}

// enterBucket spawns a fresh index and indexer for bucket, under a new
// epoch (spec.md §4.3 "constructing a new one", §4.4.1).
func (m Model) enterBucket(name string) Model {
	if m.task != nil {
		m.task.Cancel()
	}
	m.epoch++
	idx := index.New()
	m.idx = idx
	m.bucket = name
	m.prefix = ""
	m.cursor = 0
	m.lastSeq = 0
	m.view = nav.View{}
	m.entryStack = nil
	m.mode = ModeBrowse{}
	m.task = indexer.Start(context.Background(), m.transport, name, idx, m.prefs.PageSize)
	m.logInfo("bucket switch", "remote", m.remote, "bucket", name, "epoch", m.epoch)
	return m
}

// leaveBucket cancels the running indexer and discards the index,
// returning to the bucket-list view (spec.md §4.5 "parent() ... leave the
// bucket ... cancel the indexer").
func (m Model) leaveBucket() Model {
	if m.task != nil {
		m.task.Cancel()
	}
	if m.bucket != "" {
		m.logInfo("bucket switch", "remote", m.remote, "bucket", "", "previous_bucket", m.bucket, "epoch", m.epoch+1)
	}
	m.task = nil
	m.idx = nil
	m.bucket = ""
	m.prefix = ""
	m.cursor = 0
	m.view = nav.View{}
	m.entryStack = nil
	m.epoch++
	return m
}

// refresh restarts the indexer for the current bucket under a new epoch
// (spec.md §6 "r: refresh (restart indexer)").
func (m Model) refresh() Model {
	if m.bucket == "" {
		return m
	}
	if m.task != nil {
		m.task.Cancel()
	}
	m.epoch++
	idx := index.New()
	m.idx = idx
	m.lastSeq = 0
	m.task = indexer.Start(context.Background(), m.transport, m.bucket, idx, m.prefs.PageSize)
	m.banner = &Banner{Kind: BannerInfo, Message: "refreshing index"}
	return m
}

// deleteTargetAtCursor resolves the currently selected browser row into a
// delete target (spec.md §4.7 "Activated ... on the currently selected
// browser item").
func (m Model) deleteTargetAtCursor() (delete.Target, bool) {
	if m.cursor < 0 || m.cursor >= m.view.Len() {
		return delete.Target{}, false
	}
	e := m.view.Entries[m.cursor]
	if e.IsDir {
		return delete.Target{Key: m.prefix + e.Name + "/", IsPrefix: true}, true
	}
	return delete.Target{Key: m.prefix + e.Name, IsPrefix: false}, true
}

// beginDelete expands target against a fresh snapshot and issues the
// (possibly chunked) delete (spec.md §4.7 Expansion/Execution).
func (m Model) beginDelete(target delete.Target) (Model, tea.Cmd) {
	if m.idx == nil {
		return m, nil
	}
	_, snap := m.idx.Snapshot()
	keys, incomplete := delete.Expand(snap, target)
	if incomplete {
		m.banner = &Banner{Kind: BannerIndexIncomplete, Message: "index incomplete: only indexed keys will be deleted"}
	}
	m.mode = ModeBrowse{}
	cmd, id := deleteCmd(m.transport, m.bucket, target, keys, m.epoch)
	m.pendingCmdID = id
	return m, cmd
}

// applyDeleteResult reconciles the index and view after a delete resolves
// (spec.md §4.7.4).
func (m Model) applyDeleteResult(msg deleteDoneMsg) Model {
	if msg.err != nil {
		m.logWarn("delete failed", "target", msg.target.Key, "error", msg.err)
		m.banner = &Banner{Kind: classifyBannerKind(msg.err), Message: "delete failed", Detail: msg.err.Error()}
		return m
	}
	if m.idx != nil {
		m.idx.RemoveMany(delete.DeletedKeys(msg.result))
	}
	if len(msg.result.Failed) > 0 {
		m.logWarn("partial delete failure", "target", msg.target.Key, "failed_count", len(msg.result.Failed))
		m.banner = &Banner{
			Kind:    BannerPartialDelete,
			Message: fmt.Sprintf("%d failed", len(msg.result.Failed)),
			Detail:  sampleFailedKeys(msg.result.Failed, 5),
		}
	}
	return m.refreshDerived()
}

func sampleFailedKeys(failed map[string]string, n int) string {
	keys := make([]string, 0, len(failed))
	for k := range failed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[:n]
	}
	return strings.Join(keys, ", ")
}

// parentPrefix returns the containing directory prefix of key, e.g.
// "a/b/c" -> "a/b/", "z" -> "" — used when a search commit jumps to a key
// (spec.md §4.6 "Commit ... prefix set to the selected key's containing
// directory").
func parentPrefix(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[:i+1]
	}
	return ""
}

// findRowIndex locates name (a bare segment, not a full key) in view,
// matching either a directory or object row.
func findRowIndex(view nav.View, name string) (int, bool) {
	for i, e := range view.Entries {
		if e.Name == name {
			return i, true
		}
	}
	return 0, false
}

// logInfo/logWarn/logDebug guard every call site against a nil logger
// (tests build Model{} literals directly, without New, and never set one).
func (m Model) logInfo(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}

func (m Model) logWarn(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, args...)
	}
}

func (m Model) logDebug(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}

func classifyBannerKind(err error) BannerKind {
	var serr *s3client.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case s3client.KindNotFound:
			return BannerNotFound
		case s3client.KindAccessDenied:
			return BannerAccessDenied
		case s3client.KindCanceled:
			return BannerInfo
		}
	}
	return BannerNetwork
}
