package s3client

import (
	"errors"
	"sync"

	"github.com/freitascorp/s3tui/pkg/config"
)

// ErrUnknownRemote and ErrInvalidEndpoint are the two failure modes of
// Registry.ClientFor (spec.md §4.1).
var (
	ErrUnknownRemote   = errors.New("s3client: unknown remote")
	ErrInvalidEndpoint = errors.New("s3client: invalid endpoint")
)

// Registry holds the parsed remotes and lazily constructs, then caches, a
// Transport per remote name (spec.md §4.1, §9 "Ownership of S3 client
// handles"). It is the single logical owner of every Transport; engines
// only ever borrow a reference by name, the same ownership shape the
// teacher's fleet.Executor uses for its relay client.
type Registry struct {
	mu      sync.Mutex
	byName  map[string]config.Remote
	order   []string
	clients map[string]Transport
}

// NewRegistry builds a registry from an already-loaded remote list,
// preserving configuration order for ListRemotes.
func NewRegistry(remotes []config.Remote) *Registry {
	r := &Registry{
		byName:  make(map[string]config.Remote, len(remotes)),
		order:   make([]string, 0, len(remotes)),
		clients: make(map[string]Transport, len(remotes)),
	}
	for _, rem := range remotes {
		if _, dup := r.byName[rem.Name]; dup {
			continue
		}
		r.byName[rem.Name] = rem
		r.order = append(r.order, rem.Name)
	}
	return r
}

// ListRemotes returns the configured remote names in declaration order.
func (r *Registry) ListRemotes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Remote returns the immutable configuration for a remote by name.
func (r *Registry) Remote(name string) (config.Remote, bool) {
	rem, ok := r.byName[name]
	return rem, ok
}

// ClientFor constructs (on first use) and caches a Transport for the named
// remote. Safe for concurrent use.
func (r *Registry) ClientFor(name string) (Transport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[name]; ok {
		return c, nil
	}
	rem, ok := r.byName[name]
	if !ok {
		return nil, ErrUnknownRemote
	}
	c, err := newMinioTransport(rem.EndpointURL, rem.AccessKey, rem.SecretKey, rem.AddressingStyle)
	if err != nil {
		return nil, err
	}
	r.clients[name] = c
	return c, nil
}
