package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freitascorp/s3tui/pkg/config"
	"github.com/freitascorp/s3tui/pkg/delete"
	"github.com/freitascorp/s3tui/pkg/index"
	"github.com/freitascorp/s3tui/pkg/nav"
	"github.com/freitascorp/s3tui/pkg/s3client"
)

// fakeTransport is a minimal, in-memory Transport used to drive the model
// without any network I/O.
type fakeTransport struct {
	headErr  error
	headMeta s3client.ObjectMetadata
}

func (f *fakeTransport) ListBuckets(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeTransport) ListPage(ctx context.Context, bucket string, continuation *string, pageSize int) (s3client.ListPageResult, error) {
	return s3client.ListPageResult{}, nil
}

func (f *fakeTransport) HeadObject(ctx context.Context, bucket, key string) (s3client.ObjectMetadata, error) {
	return f.headMeta, f.headErr
}

func (f *fakeTransport) DeleteBatch(ctx context.Context, bucket string, keys []string) (s3client.DeleteBatchResult, error) {
	result := s3client.NewDeleteBatchResult()
	for _, k := range keys {
		result.Deleted[k] = struct{}{}
	}
	return result, nil
}

func newTestModel(keys []string) (Model, *index.Index) {
	idx := index.New()
	for _, k := range keys {
		idx.Insert(k)
	}
	_, snap := idx.Snapshot()
	m := Model{
		prefs:     config.DefaultPreferences(),
		transport: &fakeTransport{},
		bucket:    "my-bucket",
		idx:       idx,
		mode:      ModeBrowse{},
		pane:      PaneBrowser,
	}
	m.view = nav.Derive(snap.Keys(), m.prefix)
	return m, idx
}

func key(s tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: s} }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBrowseNavigateIntoDirectoryAndBack(t *testing.T) {
	m, _ := newTestModel([]string{"a/b.txt", "c.txt"})
	require.Equal(t, 2, m.view.Len())

	// "a/" sorts before "c.txt"
	updated, _ := m.Update(runeKey('l'))
	m = updated.(Model)
	assert.Equal(t, "a/", m.prefix)
	assert.Equal(t, 0, m.cursor)
	require.Equal(t, 1, m.view.Len())
	assert.Equal(t, "b.txt", m.view.Entries[0].Name)

	updated, _ = m.Update(key(tea.KeyBackspace))
	m = updated.(Model)
	assert.Equal(t, "", m.prefix)
	assert.Equal(t, 2, m.view.Len())
}

func TestBrowseRoundTripRestoresCursorToEnteredDirectory(t *testing.T) {
	// "b/" is the second row at the root (both rows are directories, and
	// "b" sorts after "a"); entering it and backing out must land the
	// cursor back on "b/", not reset to 0 (spec.md §8 Round-trip).
	m, _ := newTestModel([]string{"a/x.txt", "b/x.txt"})
	require.Equal(t, 2, m.view.Len())
	require.Equal(t, "b", m.view.Entries[1].Name)

	updated, _ := m.Update(key(tea.KeyDown))
	m = updated.(Model)
	require.Equal(t, 1, m.cursor)

	updated, _ = m.Update(runeKey('l'))
	m = updated.(Model)
	assert.Equal(t, "b/", m.prefix)
	assert.Equal(t, 0, m.cursor)

	updated, _ = m.Update(key(tea.KeyBackspace))
	m = updated.(Model)
	assert.Equal(t, "", m.prefix)
	assert.Equal(t, 1, m.cursor, "cursor should return to the entered directory's row, not reset to 0")
}

func TestBrowseBackspaceAtRootLeavesBucket(t *testing.T) {
	m, _ := newTestModel([]string{"a.txt"})
	epochBefore := m.epoch

	updated, _ := m.Update(key(tea.KeyBackspace))
	m = updated.(Model)

	assert.Equal(t, "", m.bucket)
	assert.Nil(t, m.idx)
	assert.Greater(t, m.epoch, epochBefore)
}

func TestBrowseEnterObjectRequestsMetadata(t *testing.T) {
	m, _ := newTestModel([]string{"a.txt"})

	updated, cmd := m.Update(runeKey('l'))
	m = updated.(Model)
	require.NotNil(t, cmd)

	mode, ok := m.mode.(ModeMetadata)
	require.True(t, ok)
	assert.Equal(t, "a.txt", mode.Key)
	assert.False(t, mode.Fetched)

	msg := cmd()
	got, ok := msg.(headObjectMsg)
	require.True(t, ok)
	assert.Equal(t, "a.txt", got.key)

	updated, _ = m.Update(got)
	m = updated.(Model)
	mode = m.mode.(ModeMetadata)
	assert.True(t, mode.Fetched)
}

func TestHeadObjectStaleEpochIsDiscarded(t *testing.T) {
	m, _ := newTestModel([]string{"a.txt"})

	updated, cmd := m.Update(runeKey('l'))
	m = updated.(Model)
	msg := cmd().(headObjectMsg)

	// A bucket switch (or any epoch bump) between issuing and resolving
	// invalidates the in-flight request (spec.md §5).
	m = m.leaveBucket()
	m = m.enterBucket("other-bucket")

	updated, _ = m.Update(msg)
	m = updated.(Model)
	_, stillMetadata := m.mode.(ModeMetadata)
	assert.False(t, stillMetadata, "stale-epoch result must not reopen the metadata panel")
}

func TestSearchRanksAndCommitsToParentPrefix(t *testing.T) {
	m, _ := newTestModel([]string{"logs/2024/app.log", "logs/2025/app.log", "readme.md"})
	m.mode = newSearchMode()

	updated, _ := m.Update(runeKey('a'))
	m = updated.(Model)
	updated, _ = m.Update(runeKey('p'))
	m = updated.(Model)
	updated, _ = m.Update(runeKey('p'))
	m = updated.(Model)

	mode := m.mode.(ModeSearch)
	require.Len(t, mode.Results, 2)

	updated, _ = m.Update(key(tea.KeyEnter))
	m = updated.(Model)
	_, isSearch := m.mode.(ModeSearch)
	assert.False(t, isSearch)
	assert.Contains(t, m.prefix, "logs/")
}

func TestSearchBackspaceOnEmptyQueryCancels(t *testing.T) {
	m, _ := newTestModel([]string{"a.txt", "b.txt"})
	m.mode = newSearchMode()

	updated, _ := m.Update(key(tea.KeyBackspace))
	m = updated.(Model)
	_, stillSearch := m.mode.(ModeSearch)
	assert.False(t, stillSearch, "backspace on an empty query must cancel back to Browse")
	_, isBrowse := m.mode.(ModeBrowse)
	assert.True(t, isBrowse)
}

func TestSearchCursorSticksAcrossRerank(t *testing.T) {
	m, _ := newTestModel([]string{"alpha.txt", "alphabet.txt", "beta.txt"})
	sm := newSearchMode()
	sm.Input.SetValue("alpha")
	sm.Query = "alpha"
	m.mode = sm
	m = m.refreshDerived()
	mode := m.mode.(ModeSearch)
	require.Len(t, mode.Results, 2)

	mode.Cursor = 1
	selectedKey := mode.Results[1].Key
	m.mode = mode

	m = m.refreshDerived()
	mode = m.mode.(ModeSearch)
	assert.Equal(t, selectedKey, mode.Results[mode.Cursor].Key)
}

func TestConfirmDeletePrefixRemovesKeysFromIndex(t *testing.T) {
	m, idx := newTestModel([]string{"tmp/a.txt", "tmp/b.txt", "keep.txt"})
	m.prefs.ConfirmDelete = true

	updated, _ := m.Update(runeKey('d'))
	m = updated.(Model)
	mode, ok := m.mode.(ModeConfirmDelete)
	require.True(t, ok)
	assert.True(t, mode.Target.IsPrefix)
	assert.Equal(t, "tmp/", mode.Target.Key)

	updated, cmd := m.Update(runeKey('y'))
	m = updated.(Model)
	require.NotNil(t, cmd)
	_, stillConfirming := m.mode.(ModeConfirmDelete)
	assert.False(t, stillConfirming)

	msg := cmd().(deleteDoneMsg)
	require.NoError(t, msg.err)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	_, snap := idx.Snapshot()
	assert.ElementsMatch(t, []string{"keep.txt"}, snap.Keys())
}

func TestDeleteDoneStaleEpochIsDiscarded(t *testing.T) {
	m, idx := newTestModel([]string{"a.txt"})
	epoch := m.epoch
	msg := deleteDoneMsg{
		cmdID: "x",
		epoch: epoch,
		target: delete.Target{Key: "a.txt"},
		result: delete.Result{Deleted: map[string]struct{}{"a.txt": {}}},
	}

	m.epoch++ // simulate a bucket switch landing before the delete resolves
	updated, _ := m.Update(msg)
	m = updated.(Model)

	_, snap := idx.Snapshot()
	assert.ElementsMatch(t, []string{"a.txt"}, snap.Keys(), "stale-epoch delete result must not mutate the index")
}

func TestHeadObjectFailureShowsBannerAndClosesMetadata(t *testing.T) {
	m, _ := newTestModel([]string{"broken.txt"})
	m.transport = &fakeTransport{headErr: errors.New("boom")}

	updated, cmd := m.Update(runeKey('l'))
	m = updated.(Model)
	msg := cmd().(headObjectMsg)
	require.Error(t, msg.err)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	_, stillMetadata := m.mode.(ModeMetadata)
	assert.False(t, stillMetadata)
	require.NotNil(t, m.banner)
}

func TestHelpModeDismissesOnAnyKey(t *testing.T) {
	m, _ := newTestModel(nil)
	m.mode = ModeHelp{}

	updated, _ := m.Update(runeKey('x'))
	m = updated.(Model)
	_, stillHelp := m.mode.(ModeHelp)
	assert.False(t, stillHelp)
}
