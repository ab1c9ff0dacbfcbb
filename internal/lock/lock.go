package lock

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the lockfile name at the workspace root.
const FileName = "workspace.lock.toml"

// File represents workspace.lock.toml: the pinned state of every
// package the workspace resolved, members and externals alike.
type File struct {
	Version  int       `toml:"version"`
	Packages []Package `toml:"package"`
}

// Package records one pinned package. Source is empty for workspace
// members and "registry+<url>" for external packages.
type Package struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source,omitempty"`
	Integrity    string   `toml:"integrity,omitempty"`
	Dependencies []string `toml:"dependencies,omitempty"` // "name version" pairs
}

// CurrentVersion is the lockfile schema version this tool writes.
const CurrentVersion = 1

// Load reads and validates a lockfile.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lockfile: %w", err)
	}
	return Parse(data)
}

// Parse parses lockfile content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing lockfile TOML: %w", err)
	}
	if f.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported lockfile version: %d (expected %d)", f.Version, CurrentVersion)
	}
	return &f, nil
}

// Save writes the lockfile with entries sorted by name then version so
// output is stable across runs.
func Save(path string, f *File) error {
	sort.Slice(f.Packages, func(i, j int) bool {
		if f.Packages[i].Name != f.Packages[j].Name {
			return f.Packages[i].Name < f.Packages[j].Name
		}
		return f.Packages[i].Version < f.Packages[j].Version
	})
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling lockfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing lockfile: %w", err)
	}
	return nil
}

// Get returns the pinned entry for a package name.
func (f *File) Get(name string) (*Package, bool) {
	for i := range f.Packages {
		if f.Packages[i].Name == name {
			return &f.Packages[i], true
		}
	}
	return nil, false
}
