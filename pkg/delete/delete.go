// Package delete implements the deletion engine (C7): it expands a
// selection into a batch of keys, executes batched deletes sequentially,
// and hands back a result the caller reconciles into the index and view
// (spec.md §4.7).
package delete

import (
	"context"
	"strings"

	"github.com/freitascorp/s3tui/pkg/index"
	"github.com/freitascorp/s3tui/pkg/s3client"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the store-imposed ceiling on one delete_batch call
// (spec.md §4.7.1).
const chunkSize = 1000

// Target is either a single object key or a virtual prefix, as selected in
// Browse before the ConfirmDelete transition (spec.md §3 "Delete target").
type Target struct {
	Key      string
	IsPrefix bool
}

// Expand resolves target against a fresh index snapshot into the concrete
// set of keys to delete (spec.md §4.7). For a prefix target, indexIncomplete
// reports whether the index had not yet finished listing the bucket at
// confirm-time — the caller must warn the operator that only indexed keys
// will be deleted (spec.md §4.7, §7 IndexIncomplete) rather than issuing an
// unbounded server-side list to close the gap.
func Expand(snap index.SnapshotView, target Target) (keys []string, indexIncomplete bool) {
	if !target.IsPrefix {
		return []string{target.Key}, false
	}
	for _, k := range snap.Keys() {
		if strings.HasPrefix(k, target.Key) {
			keys = append(keys, k)
		}
	}
	return keys, !snap.Complete
}

// Result is the accumulated outcome of executing a (possibly chunked)
// delete across all its chunks.
type Result = s3client.DeleteBatchResult

// Execute issues delete_batch calls sequentially in chunks of at most
// chunkSize keys (spec.md §4.7.2: "Sequential, not parallel: the store is
// the bottleneck and ordering simplifies partial-failure reporting"),
// accumulating Deleted and Failed across chunks. progress, if non-nil, is
// invoked after each chunk completes. Execution itself does not support
// mid-flight cancellation once started (spec.md §4.7 "no mid-flight
// cancel"), but the whole operation is still bound to one
// context so that a process exit unwinds the goroutine cleanly instead of
// leaking it.
func Execute(ctx context.Context, transport s3client.Transport, bucket string, keys []string, progress func(done, total int)) (Result, error) {
	result := s3client.NewDeleteBatchResult()
	if len(keys) == 0 {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		done := 0
		for start := 0; start < len(keys); start += chunkSize {
			if err := gctx.Err(); err != nil {
				return err
			}
			end := start + chunkSize
			if end > len(keys) {
				end = len(keys)
			}
			chunkResult, err := transport.DeleteBatch(gctx, bucket, keys[start:end])
			if err != nil {
				return err
			}
			result.Merge(chunkResult)
			done = end
			if progress != nil {
				progress(done, len(keys))
			}
		}
		return nil
	})

	err := g.Wait()
	return result, err
}

// DeletedKeys returns the deleted-key set as a slice, for Index.RemoveMany.
func DeletedKeys(r Result) []string {
	out := make([]string, 0, len(r.Deleted))
	for k := range r.Deleted {
		out = append(out, k)
	}
	return out
}

// NumChunks reports how many delete_batch calls Execute would issue for n
// keys.
func NumChunks(n int) int {
	if n == 0 {
		return 0
	}
	return (n + chunkSize - 1) / chunkSize
}
