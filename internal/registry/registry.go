// Package registry defines the registry contract (version listing,
// publish, yank) and provides in-memory and remote implementations.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/git-pkgs/workspaces/client"
	"github.com/git-pkgs/workspaces/internal/core"
)

// Ecosystem is the PURL type for packages handled by this tool.
const Ecosystem = "cargo"

// Index answers read-only queries: the published versions of a package,
// out of which constraint satisfaction is decided.
type Index interface {
	// Host identifies the registry, e.g. "https://crates.io". It is
	// recorded in lockfile source strings.
	Host() string

	// Versions returns every published version of a package, including
	// yanked ones. Returns NotFoundError for an unknown name.
	Versions(ctx context.Context, name string) ([]core.Publication, error)

	// URLs returns the URL builder for this registry.
	URLs() client.URLBuilder
}

// Registry extends Index with the mutating operations a publisher uses.
type Registry interface {
	Index

	// Publish registers a new immutable (name, version) pair. The
	// version must strictly exceed the highest published version of the
	// name, and the name must not be owned by a different publisher.
	Publish(ctx context.Context, pub core.Publication) error

	// Yank marks a published version as deprecated without deleting it.
	Yank(ctx context.Context, name, version string) error

	// Unyank clears the deprecated flag of a published version.
	Unyank(ctx context.Context, name, version string) error
}

// Factory creates a registry from a backend-specific source string.
type Factory func(source string, c *client.Client) (Registry, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a registry factory for a backend name ("memory",
// "remote").
func Register(backend string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[backend] = factory
}

// New creates a registry for the given backend. For "remote" the source
// is the registry base URL; for "memory" an optional snapshot path.
// If c is nil, client.DefaultClient() is used.
func New(backend, source string, c *client.Client) (Registry, error) {
	mu.RLock()
	factory, ok := factories[backend]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown registry backend: %s", backend)
	}
	if c == nil {
		c = client.DefaultClient()
	}
	return factory(source, c)
}

// SupportedBackends returns all registered backend names.
func SupportedBackends() []string {
	mu.RLock()
	defer mu.RUnlock()

	backends := make([]string, 0, len(factories))
	for b := range factories {
		backends = append(backends, b)
	}
	return backends
}
