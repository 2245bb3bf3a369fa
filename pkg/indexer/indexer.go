// Package indexer implements the indexer task (C4): a single background
// producer that pages a bucket via the S3 transport facade and pushes keys
// into the key index while the UI is already interacting (spec.md §4.4).
package indexer

import (
	"context"

	"github.com/freitascorp/s3tui/pkg/index"
	"github.com/freitascorp/s3tui/pkg/s3client"
)

// DefaultPageSize is used when no preference overrides it; spec.md §4.2
// treats page size as purely a transport detail the indexer is free to
// pick.
const DefaultPageSize = 1000

// Task is one running (or finished) indexer for a single (remote, bucket)
// epoch. Cancel stops the task before its next page request and also
// cancels the context an in-flight request runs under; a page that still
// comes back after cancellation is discarded (spec.md §4.4.4, §5).
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start spawns the indexer goroutine. transport and idx must outlive the
// task; the caller (the UI state machine) owns constructing a fresh Index
// per bucket entry and discarding the old one on exit (spec.md §4.3).
func Start(parent context.Context, transport s3client.Transport, bucket string, idx *index.Index, pageSize int) *Task {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	ctx, cancel := context.WithCancel(parent)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go t.run(ctx, transport, bucket, idx, pageSize)
	return t
}

// Cancel requests the task stop before its next page. An in-flight
// transport call sees its context canceled; a transport that honours the
// context returns early, and any page it still returns is not inserted.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed once the task has terminated, by any of the three
// mechanisms in spec.md §4.4.4 (end-of-stream, cancellation, latched
// error).
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) run(ctx context.Context, transport s3client.Transport, bucket string, idx *index.Index, pageSize int) {
	defer close(t.done)

	var continuation *string
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		page, err := transport.ListPage(ctx, bucket, continuation, pageSize)
		if err != nil {
			if ctx.Err() != nil {
				// Canceled mid-request: the task is stopping, not erroring.
				return
			}
			idx.SetError(err)
			return
		}
		if ctx.Err() != nil {
			// Canceled while the page was in flight: discard it.
			return
		}

		for _, key := range page.Keys {
			idx.Insert(key)
		}

		if page.Next == nil {
			idx.SetComplete()
			return
		}
		continuation = page.Next

		// Yield cooperatively between pages so the UI frame loop can
		// observe partial results before the next page request starts
		// (spec.md §4.4.3).
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
