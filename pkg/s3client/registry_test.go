package s3client

import (
	"testing"

	"github.com/freitascorp/s3tui/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRemotes() []config.Remote {
	return []config.Remote{
		{Name: "b", EndpointURL: "https://b.example.com", AccessKey: "ak", SecretKey: "sk", APIVersion: "s3v4", AddressingStyle: "auto"},
		{Name: "a", EndpointURL: "https://a.example.com", AccessKey: "ak", SecretKey: "sk", APIVersion: "s3v4", AddressingStyle: "auto"},
	}
}

func TestRegistryListRemotesPreservesOrder(t *testing.T) {
	reg := NewRegistry(testRemotes())
	assert.Equal(t, []string{"b", "a"}, reg.ListRemotes())
}

func TestRegistryClientForUnknown(t *testing.T) {
	reg := NewRegistry(testRemotes())
	_, err := reg.ClientFor("nope")
	assert.ErrorIs(t, err, ErrUnknownRemote)
}

func TestRegistryClientForCachesInstance(t *testing.T) {
	reg := NewRegistry(testRemotes())
	c1, err := reg.ClientFor("a")
	require.NoError(t, err)
	c2, err := reg.ClientFor("a")
	require.NoError(t, err)
	assert.Same(t, c1, c2)
}

func TestRegistryClientForInvalidEndpoint(t *testing.T) {
	reg := NewRegistry([]config.Remote{
		{Name: "bad", EndpointURL: "::not a url::", AccessKey: "ak", SecretKey: "sk"},
	})
	_, err := reg.ClientFor("bad")
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}
