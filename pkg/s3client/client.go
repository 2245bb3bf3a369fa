package s3client

import (
	"context"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Transport is the S3 transport facade (C2) every engine issues requests
// through. Implementations must be safe for concurrent use — the registry
// hands out one shared instance per remote — and every operation must
// suspend only the calling goroutine, never block the caller's event loop
// (spec.md §4.2, §5).
type Transport interface {
	ListBuckets(ctx context.Context) ([]string, error)
	ListPage(ctx context.Context, bucket string, continuation *string, pageSize int) (ListPageResult, error)
	HeadObject(ctx context.Context, bucket, key string) (ObjectMetadata, error)
	DeleteBatch(ctx context.Context, bucket string, keys []string) (DeleteBatchResult, error)
}

const defaultPageSize = 1000

// maxDeleteBatch is the store-imposed ceiling on one delete_batch call
// (spec.md §4.2). The deletion engine already chunks to this size; the
// facade enforces it again defensively for any other caller.
const maxDeleteBatch = 1000

// minioTransport implements Transport over github.com/minio/minio-go/v7.
type minioTransport struct {
	client *minio.Client
}

// newMinioTransport constructs a client for one remote. Secure is derived
// from the endpoint URL's scheme; AddressingStyle maps to minio-go's
// BucketLookup hint.
func newMinioTransport(endpointURL, accessKey, secretKey, addressingStyle string) (*minioTransport, error) {
	u, err := url.Parse(endpointURL)
	if err != nil || u.Host == "" {
		return nil, ErrInvalidEndpoint
	}

	lookup := minio.BucketLookupAuto
	switch strings.ToLower(addressingStyle) {
	case "on":
		lookup = minio.BucketLookupPath
	case "off":
		lookup = minio.BucketLookupDNS
	}

	cl, err := minio.New(u.Host, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       u.Scheme == "https",
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, ErrInvalidEndpoint
	}
	return &minioTransport{client: cl}, nil
}

// ListBuckets lists the buckets visible to this remote's credentials, used
// to populate the bucket-list screen between the remote picker and Browse
// (SPEC_FULL.md CLI entrypoint / supplemented remote pane).
func (t *minioTransport) ListBuckets(ctx context.Context) ([]string, error) {
	buckets, err := t.client.ListBuckets(ctx)
	if err != nil {
		return nil, classify("list-buckets", "", err)
	}
	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = b.Name
	}
	return names, nil
}

// ListPage drains minio-go's push-based ListObjects iterator until it has
// pageSize keys or the bucket is exhausted, then cancels the inner listing
// and returns a continuation token (the last key seen), preserving the
// "one call, one page" contract of spec.md §4.2 on top of an SDK whose
// native iterator does not expose pages directly.
func (t *minioTransport) ListPage(ctx context.Context, bucket string, continuation *string, pageSize int) (ListPageResult, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Recursive: true}
	if continuation != nil {
		opts.StartAfter = *continuation
	}

	ch := t.client.ListObjects(listCtx, bucket, opts)
	keys := make([]string, 0, pageSize)
	var last string
	for obj := range ch {
		if obj.Err != nil {
			return ListPageResult{}, classify("list", "", obj.Err)
		}
		keys = append(keys, obj.Key)
		last = obj.Key
		if len(keys) >= pageSize {
			cancel()
			break
		}
	}

	var next *string
	if len(keys) >= pageSize {
		v := last
		next = &v
	}
	return ListPageResult{Keys: keys, Next: next}, nil
}

// HeadObject wraps StatObject, lower-casing user-metadata keys and
// stripping the store's standard prefix (spec.md §4.2).
func (t *minioTransport) HeadObject(ctx context.Context, bucket, key string) (ObjectMetadata, error) {
	info, err := t.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectMetadata{}, classify("head", key, err)
	}
	meta := ObjectMetadata{
		Key:          key,
		SizeBytes:    info.Size,
		ContentType:  info.ContentType,
		ETag:         strings.Trim(info.ETag, `"`),
		UserMetadata: normalizeUserMetadata(info.UserMetadata),
	}
	if !info.LastModified.IsZero() {
		meta.LastModified = info.LastModified
		meta.HasModified = true
	}
	return meta, nil
}

// DeleteBatch wraps RemoveObjects, chunking defensively at maxDeleteBatch
// even though the deletion engine already respects that ceiling (spec.md
// §4.2: "callers larger than that must chunk").
func (t *minioTransport) DeleteBatch(ctx context.Context, bucket string, keys []string) (DeleteBatchResult, error) {
	result := NewDeleteBatchResult()
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := start + maxDeleteBatch
		if end > len(keys) {
			end = len(keys)
		}
		chunk, err := t.deleteChunk(ctx, bucket, keys[start:end])
		if err != nil {
			return result, err
		}
		result.Merge(chunk)
	}
	return result, nil
}

func (t *minioTransport) deleteChunk(ctx context.Context, bucket string, keys []string) (DeleteBatchResult, error) {
	objectsCh := make(chan minio.ObjectInfo)
	go func() {
		defer close(objectsCh)
		for _, k := range keys {
			select {
			case objectsCh <- minio.ObjectInfo{Key: k}:
			case <-ctx.Done():
				return
			}
		}
	}()

	result := NewDeleteBatchResult()
	for e := range t.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if e.Err != nil {
			result.Failed[e.ObjectName] = e.Err.Error()
		}
	}
	for _, k := range keys {
		if _, failed := result.Failed[k]; !failed {
			result.Deleted[k] = struct{}{}
		}
	}
	return result, nil
}

// normalizeUserMetadata lower-cases keys and strips the standard
// "X-Amz-Meta-" prefix minio-go leaves on StatObject's UserMetadata map.
func normalizeUserMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.TrimPrefix(k, "X-Amz-Meta-")
		k = strings.TrimPrefix(k, "x-amz-meta-")
		out[strings.ToLower(k)] = v
	}
	return out
}
