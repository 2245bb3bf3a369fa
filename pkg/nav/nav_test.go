package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveBasicBrowse(t *testing.T) {
	keys := []string{"a/x", "a/y", "z"}
	v := Derive(keys, "")

	require.Len(t, v.Entries, 2)
	assert.Equal(t, Entry{Name: "a", IsDir: true}, v.Entries[0])
	assert.Equal(t, Entry{Name: "z", IsDir: false}, v.Entries[1])
}

func TestDeriveDeeperPrefix(t *testing.T) {
	keys := []string{"a/x", "a/y", "a/b/c", "z"}
	v := Derive(keys, "a/")

	require.Len(t, v.Entries, 3)
	assert.Equal(t, "b", v.Entries[0].Name)
	assert.True(t, v.Entries[0].IsDir)
	assert.Equal(t, "x", v.Entries[1].Name)
	assert.Equal(t, "y", v.Entries[2].Name)
}

func TestDeriveElidesTrailingSlashMarker(t *testing.T) {
	keys := []string{"dir/", "dir/child"}
	v := Derive(keys, "")

	require.Len(t, v.Entries, 1)
	assert.Equal(t, "dir", v.Entries[0].Name)
	assert.True(t, v.Entries[0].IsDir)
}

func TestDeriveEmptyBucket(t *testing.T) {
	v := Derive(nil, "")
	assert.Equal(t, 0, v.Len())
}

func TestEnterDirectoryPushesPrefix(t *testing.T) {
	v := Derive([]string{"a/x", "z"}, "")
	act, ok := Enter(v, 0)
	require.True(t, ok)
	assert.Equal(t, "a/", act.PushPrefix)
	assert.False(t, act.IsObject)
}

func TestEnterObjectOpensMetadata(t *testing.T) {
	v := Derive([]string{"a/x", "z"}, "")
	act, ok := Enter(v, 1)
	require.True(t, ok)
	assert.True(t, act.IsObject)
	assert.Equal(t, "z", act.ObjectKey)
}

func TestEnterOutOfRange(t *testing.T) {
	v := Derive(nil, "")
	_, ok := Enter(v, 0)
	assert.False(t, ok)
}

func TestParentRoundTrip(t *testing.T) {
	keys := []string{"a/x", "a/y", "z"}
	root := Derive(keys, "")
	act, ok := Enter(root, 0) // "a/"
	require.True(t, ok)

	deeper := Derive(keys, act.PushPrefix)
	assert.Equal(t, "a/", deeper.Prefix)

	parent, left := Parent(deeper.Prefix)
	assert.False(t, left)
	assert.Equal(t, "", parent)
}

func TestParentAtBucketRootLeavesBucket(t *testing.T) {
	_, left := Parent("")
	assert.True(t, left)
}

func TestParentNestedPrefix(t *testing.T) {
	p, left := Parent("a/b/")
	assert.False(t, left)
	assert.Equal(t, "a/", p)
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, ClampCursor(-1, 5))
	assert.Equal(t, 4, ClampCursor(10, 5))
	assert.Equal(t, 2, ClampCursor(2, 5))
	assert.Equal(t, 0, ClampCursor(2, 0))
}
