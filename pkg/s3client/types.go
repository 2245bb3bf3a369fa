// Package s3client implements the remote registry (C1) and the S3 transport
// facade (C2): list-page, head-object, and delete-batch operations over an
// async request surface, plus the tagged-error model every caller reasons
// about (spec.md §4.2, §7).
package s3client

import "time"

// ObjectMetadata is the result of a head-object call (spec.md §3).
type ObjectMetadata struct {
	Key           string
	SizeBytes     int64
	ContentType   string
	LastModified  time.Time
	HasModified   bool
	ETag          string
	UserMetadata  map[string]string
}

// ListPageResult is one page of keys plus an opaque continuation token.
// Callers re-invoke ListPage with Next until it is nil (spec.md §4.2).
type ListPageResult struct {
	Keys []string
	Next *string
}

// DeleteBatchResult is the outcome of one delete_batch call. Partial
// success is expected and must be reported, never treated as atomic
// (spec.md §4.2).
type DeleteBatchResult struct {
	Deleted map[string]struct{}
	Failed  map[string]string // key -> reason
}

// NewDeleteBatchResult returns an empty, ready-to-accumulate result.
func NewDeleteBatchResult() DeleteBatchResult {
	return DeleteBatchResult{
		Deleted: make(map[string]struct{}),
		Failed:  make(map[string]string),
	}
}

// Merge folds other into r in place, used by the deletion engine to
// accumulate results across chunks (spec.md §4.7.3).
func (r *DeleteBatchResult) Merge(other DeleteBatchResult) {
	for k := range other.Deleted {
		r.Deleted[k] = struct{}{}
	}
	for k, reason := range other.Failed {
		r.Failed[k] = reason
	}
}
