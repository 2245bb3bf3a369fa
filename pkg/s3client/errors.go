package s3client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// ErrorKind tags a transport failure the way spec.md §4.2 and §7 require:
// every caller needs to distinguish these cases to pick the right banner.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindAccessDenied ErrorKind = "access_denied"
	KindNetwork      ErrorKind = "network"
	KindProtocol     ErrorKind = "protocol"
	KindCanceled     ErrorKind = "canceled"
)

// Error is the tagged error every transport operation returns on failure.
type Error struct {
	Kind ErrorKind
	Op   string // "list-buckets", "list", "head"
	Key  string // object key, if applicable
	Err  error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("s3client: %s %s: %s: %v", e.Op, e.Key, e.Kind, e.Err)
	}
	return fmt.Sprintf("s3client: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify turns a raw error from minio-go or the context into a tagged
// Error. It is the single place that understands minio-go's error shapes,
// so every other package only ever sees the five-member ErrorKind enum.
func classify(op, key string, err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Op: op, Key: key, Err: err}
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return &Error{Kind: KindNotFound, Op: op, Key: key, Err: err}
	case "AccessDenied":
		return &Error{Kind: KindAccessDenied, Op: op, Key: key, Err: err}
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Op: op, Key: key, Err: err}
	case http.StatusForbidden:
		return &Error{Kind: KindAccessDenied, Op: op, Key: key, Err: err}
	}
	if resp.StatusCode == 0 && resp.Code == "" {
		// minio-go could not even form an HTTP response: treat as a
		// network-level failure rather than a protocol-level one.
		return &Error{Kind: KindNetwork, Op: op, Key: key, Err: err}
	}
	return &Error{Kind: KindProtocol, Op: op, Key: key, Err: err}
}
