package s3client

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestClassifyNotFound(t *testing.T) {
	err := minio.ErrorResponse{Code: "NoSuchKey", Message: "missing"}
	got := classify("head", "a/b", err)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "a/b", got.Key)
}

func TestClassifyAccessDenied(t *testing.T) {
	err := minio.ErrorResponse{Code: "AccessDenied"}
	got := classify("list", "", err)
	assert.Equal(t, KindAccessDenied, got.Kind)
}

func TestClassifyCanceled(t *testing.T) {
	got := classify("list", "", context.Canceled)
	assert.Equal(t, KindCanceled, got.Kind)
}

func TestClassifyNetworkFallback(t *testing.T) {
	got := classify("list", "", errors.New("dial tcp: connection refused"))
	assert.Equal(t, KindNetwork, got.Kind)
}

func TestClassifyNilIsNil(t *testing.T) {
	assert.Nil(t, classify("list", "", nil))
}
