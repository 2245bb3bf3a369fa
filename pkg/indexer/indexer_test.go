package indexer

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/freitascorp/s3tui/pkg/index"
	"github.com/freitascorp/s3tui/pkg/s3client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is a hand-rolled stand-in for the S3 transport facade,
// matching the teacher's own test style of faking a real collaborator
// rather than generating mocks.
type fakeTransport struct {
	pages    [][]string
	errAtPg  int // -1 disables
	blockCh  chan struct{}
}

func (f *fakeTransport) ListBuckets(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeTransport) ListPage(ctx context.Context, bucket string, continuation *string, pageSize int) (s3client.ListPageResult, error) {
	if f.blockCh != nil {
		select {
		case <-f.blockCh:
		case <-ctx.Done():
			return s3client.ListPageResult{}, ctx.Err()
		}
	}

	pg := 0
	if continuation != nil {
		pg, _ = strconv.Atoi(*continuation)
	}
	if f.errAtPg == pg {
		return s3client.ListPageResult{}, errors.New("transport boom")
	}
	if pg >= len(f.pages) {
		return s3client.ListPageResult{}, nil
	}
	var next *string
	if pg+1 < len(f.pages) {
		s := strconv.Itoa(pg + 1)
		next = &s
	}
	return s3client.ListPageResult{Keys: f.pages[pg], Next: next}, nil
}

func (f *fakeTransport) HeadObject(ctx context.Context, bucket, key string) (s3client.ObjectMetadata, error) {
	return s3client.ObjectMetadata{}, nil
}

func (f *fakeTransport) DeleteBatch(ctx context.Context, bucket string, keys []string) (s3client.DeleteBatchResult, error) {
	return s3client.NewDeleteBatchResult(), nil
}

func waitDone(t *testing.T, task *Task) {
	t.Helper()
	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("indexer task did not finish in time")
	}
}

func TestIndexerCompletesAfterAllPages(t *testing.T) {
	tr := &fakeTransport{pages: [][]string{{"a", "b"}, {"c"}}, errAtPg: -1}
	idx := index.New()
	task := Start(context.Background(), tr, "bucket", idx, 0)
	waitDone(t, task)

	_, snap := idx.Snapshot()
	assert.True(t, snap.Complete)
	assert.NoError(t, snap.Err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, snap.Keys())
}

func TestIndexerLatchesErrorButKeepsPartialResults(t *testing.T) {
	tr := &fakeTransport{pages: [][]string{{"a"}, {"b"}}, errAtPg: 1}
	idx := index.New()
	task := Start(context.Background(), tr, "bucket", idx, 0)
	waitDone(t, task)

	_, snap := idx.Snapshot()
	assert.False(t, snap.Complete)
	require.Error(t, snap.Err)
	assert.Equal(t, []string{"a"}, snap.Keys())
}

func TestIndexerCancelStopsWithoutLatchingError(t *testing.T) {
	tr := &fakeTransport{pages: [][]string{{"a"}, {"b"}}, errAtPg: -1, blockCh: make(chan struct{})}
	idx := index.New()
	task := Start(context.Background(), tr, "bucket", idx, 0)

	task.Cancel()
	waitDone(t, task)

	_, snap := idx.Snapshot()
	assert.False(t, snap.Complete)
	assert.NoError(t, snap.Err)
}
