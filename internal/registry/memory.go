package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/git-pkgs/workspaces/client"
	"github.com/git-pkgs/workspaces/internal/core"
)

func init() {
	Register("memory", func(source string, _ *client.Client) (Registry, error) {
		if source == "" {
			return NewMemory(), nil
		}
		return OpenMemory(source)
	})
}

// Memory is an in-process registry. With a snapshot path it persists
// its state to a YAML file after every mutation, so a CLI run can pick
// up where the previous one left off.
type Memory struct {
	mu   sync.RWMutex
	path string // snapshot path, empty for ephemeral registries
	pkgs map[string]*record
}

type record struct {
	Owner    string
	Versions []core.Publication // ascending by publish order
}

// NewMemory creates an empty ephemeral registry.
func NewMemory() *Memory {
	return &Memory{pkgs: make(map[string]*record)}
}

// OpenMemory creates a registry backed by a YAML snapshot file. A
// missing file starts empty and is created on first publish.
func OpenMemory(path string) (*Memory, error) {
	m := &Memory{path: path, pkgs: make(map[string]*record)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry snapshot: %w", err)
	}
	if err := m.restore(data); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Memory) Host() string {
	if m.path != "" {
		return "file://" + m.path
	}
	return "memory://local"
}

func (m *Memory) URLs() client.URLBuilder {
	return memoryURLs{host: m.Host()}
}

func (m *Memory) Versions(ctx context.Context, name string) ([]core.Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.pkgs[name]
	if !ok {
		return nil, &core.NotFoundError{Name: name}
	}
	out := make([]core.Publication, len(rec.Versions))
	copy(out, rec.Versions)
	return out, nil
}

func (m *Memory) Publish(ctx context.Context, pub core.Publication) error {
	if pub.Name == "" {
		return fmt.Errorf("publish: name is required")
	}
	if _, err := core.ParseVersion(pub.Version); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	if pub.License != "" {
		if err := core.ValidateLicense(pub.License); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.pkgs[pub.Name]
	if ok {
		if rec.Owner != pub.Owner {
			return &core.NameCollisionError{Name: pub.Name, Owner: rec.Owner}
		}
		highest := rec.Versions[len(rec.Versions)-1].Version
		cmp, err := core.CompareVersions(pub.Version, highest)
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		if cmp <= 0 {
			return &core.DuplicateVersionError{Name: pub.Name, Version: pub.Version, Published: highest}
		}
	} else {
		rec = &record{Owner: pub.Owner}
		m.pkgs[pub.Name] = rec
	}

	if pub.PublishedAt.IsZero() {
		pub.PublishedAt = time.Now().UTC()
	}
	pub.Yanked = false
	rec.Versions = append(rec.Versions, pub)

	return m.persist()
}

func (m *Memory) Yank(ctx context.Context, name, version string) error {
	return m.setYanked(name, version, true)
}

func (m *Memory) Unyank(ctx context.Context, name, version string) error {
	return m.setYanked(name, version, false)
}

func (m *Memory) setYanked(name, version string, yanked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.pkgs[name]
	if !ok {
		return &core.NotFoundError{Name: name, Version: version}
	}
	for i := range rec.Versions {
		if rec.Versions[i].Version == version {
			rec.Versions[i].Yanked = yanked
			return m.persist()
		}
	}
	return &core.NotFoundError{Name: name, Version: version}
}

// Snapshot YAML shapes.
type snapshot struct {
	Packages map[string]snapshotRecord `yaml:"packages"`
}

type snapshotRecord struct {
	Owner    string            `yaml:"owner,omitempty"`
	Versions []snapshotVersion `yaml:"versions"`
}

type snapshotVersion struct {
	Version     string    `yaml:"version"`
	License     string    `yaml:"license,omitempty"`
	Description string    `yaml:"description,omitempty"`
	Integrity   string    `yaml:"integrity,omitempty"`
	Yanked      bool      `yaml:"yanked,omitempty"`
	PublishedAt time.Time `yaml:"published_at,omitempty"`
}

// persist writes the snapshot. Caller holds the write lock.
func (m *Memory) persist() error {
	if m.path == "" {
		return nil
	}

	snap := snapshot{Packages: make(map[string]snapshotRecord, len(m.pkgs))}
	names := make([]string, 0, len(m.pkgs))
	for name := range m.pkgs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rec := m.pkgs[name]
		sr := snapshotRecord{Owner: rec.Owner}
		for _, v := range rec.Versions {
			sr.Versions = append(sr.Versions, snapshotVersion{
				Version:     v.Version,
				License:     v.License,
				Description: v.Description,
				Integrity:   v.Integrity,
				Yanked:      v.Yanked,
				PublishedAt: v.PublishedAt,
			})
		}
		snap.Packages[name] = sr
	}

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling registry snapshot: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("writing registry snapshot: %w", err)
	}
	return nil
}

func (m *Memory) restore(data []byte) error {
	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing registry snapshot: %w", err)
	}
	for name, sr := range snap.Packages {
		rec := &record{Owner: sr.Owner}
		for _, v := range sr.Versions {
			rec.Versions = append(rec.Versions, core.Publication{
				Name:        name,
				Version:     v.Version,
				License:     v.License,
				Description: v.Description,
				Integrity:   v.Integrity,
				Owner:       sr.Owner,
				Yanked:      v.Yanked,
				PublishedAt: v.PublishedAt,
			})
		}
		m.pkgs[name] = rec
	}
	return nil
}

// memoryURLs satisfies client.URLBuilder for in-process registries.
// There is nothing to download, so only the PURL is populated.
type memoryURLs struct {
	host string
}

func (u memoryURLs) Registry(name, version string) string      { return "" }
func (u memoryURLs) Download(name, version string) string      { return "" }
func (u memoryURLs) Documentation(name, version string) string { return "" }
func (u memoryURLs) PURL(name, version string) string          { return Coordinate(name, version) }
