package registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/git-pkgs/workspaces/internal/core"
)

func publish(t *testing.T, m *Memory, name, version, owner string) {
	t.Helper()
	err := m.Publish(context.Background(), core.Publication{
		Name: name, Version: version, Owner: owner, License: "MIT",
	})
	if err != nil {
		t.Fatalf("Publish(%s %s) failed: %v", name, version, err)
	}
}

func TestPublishMonotonicVersions(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	publish(t, m, "rand", "0.1.0", "alice")
	publish(t, m, "rand", "0.1.1", "alice")

	// Republishing a superseded version fails.
	err := m.Publish(ctx, core.Publication{Name: "rand", Version: "0.1.0", Owner: "alice"})
	if !errors.Is(err, core.ErrDuplicateVersion) {
		t.Fatalf("expected ErrDuplicateVersion, got %v", err)
	}
	var dup *core.DuplicateVersionError
	if !errors.As(err, &dup) || dup.Published != "0.1.1" {
		t.Errorf("duplicate error should carry highest published version: %v", err)
	}

	// Equal to the highest also fails.
	err = m.Publish(ctx, core.Publication{Name: "rand", Version: "0.1.1", Owner: "alice"})
	if !errors.Is(err, core.ErrDuplicateVersion) {
		t.Fatalf("expected ErrDuplicateVersion for equal version, got %v", err)
	}
}

func TestPublishNameCollision(t *testing.T) {
	m := NewMemory()
	publish(t, m, "rand", "0.1.0", "alice")

	err := m.Publish(context.Background(), core.Publication{Name: "rand", Version: "0.2.0", Owner: "mallory"})
	if !errors.Is(err, core.ErrNameCollision) {
		t.Fatalf("expected ErrNameCollision, got %v", err)
	}
}

func TestPublishRejectsBadLicense(t *testing.T) {
	m := NewMemory()
	err := m.Publish(context.Background(), core.Publication{
		Name: "rand", Version: "0.1.0", Owner: "alice", License: "MadeUp-1.0",
	})
	if err == nil {
		t.Fatal("expected error for invalid SPDX expression")
	}
}

func TestYankUnyankRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	publish(t, m, "rand", "0.9.0", "alice")

	if err := m.Yank(ctx, "rand", "0.9.0"); err != nil {
		t.Fatalf("Yank failed: %v", err)
	}
	versions, err := m.Versions(ctx, "rand")
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}
	if !versions[0].Yanked {
		t.Error("version should be yanked")
	}

	if err := m.Unyank(ctx, "rand", "0.9.0"); err != nil {
		t.Fatalf("Unyank failed: %v", err)
	}
	versions, _ = m.Versions(ctx, "rand")
	if versions[0].Yanked {
		t.Error("unyank should restore the pre-yank flag")
	}
}

func TestYankNeverPublished(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Yank(ctx, "ghost", "1.0.0"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("yank of unknown package: expected ErrNotFound, got %v", err)
	}

	publish(t, m, "rand", "0.9.0", "alice")
	if err := m.Yank(ctx, "rand", "9.9.9"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("yank of unknown version: expected ErrNotFound, got %v", err)
	}
}

func TestVersionsUnknownPackage(t *testing.T) {
	m := NewMemory()
	_, err := m.Versions(context.Background(), "ghost")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	ctx := context.Background()

	m, err := OpenMemory(path)
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	publish(t, m, "rand", "0.9.0", "alice")
	publish(t, m, "rand", "0.9.2", "alice")
	publish(t, m, "serde", "1.0.0", "bob")
	if err := m.Yank(ctx, "rand", "0.9.0"); err != nil {
		t.Fatalf("Yank failed: %v", err)
	}

	// Reopen from the snapshot.
	m2, err := OpenMemory(path)
	if err != nil {
		t.Fatalf("OpenMemory (reopen) failed: %v", err)
	}

	versions, err := m2.Versions(ctx, "rand")
	if err != nil {
		t.Fatalf("Versions after reopen failed: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("version count = %d, want 2", len(versions))
	}
	if !versions[0].Yanked || versions[1].Yanked {
		t.Errorf("yank state lost across snapshot: %+v", versions)
	}

	// Ownership survives the snapshot.
	err = m2.Publish(ctx, core.Publication{Name: "serde", Version: "1.1.0", Owner: "alice"})
	if !errors.Is(err, core.ErrNameCollision) {
		t.Errorf("expected ErrNameCollision after reopen, got %v", err)
	}
}

func TestFactoryNew(t *testing.T) {
	reg, err := New("memory", "", nil)
	if err != nil {
		t.Fatalf("New(memory) failed: %v", err)
	}
	if reg.Host() != "memory://local" {
		t.Errorf("host = %q", reg.Host())
	}

	if _, err := New("bogus", "", nil); err == nil {
		t.Error("expected error for unknown backend")
	}

	backends := SupportedBackends()
	found := map[string]bool{}
	for _, b := range backends {
		found[b] = true
	}
	if !found["memory"] || !found["remote"] {
		t.Errorf("backends = %v, want memory and remote", backends)
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	purl := Coordinate("rand", "0.9.2")
	if purl != "pkg:cargo/rand@0.9.2" {
		t.Errorf("Coordinate = %q", purl)
	}

	name, version, err := ParseCoordinate(purl)
	if err != nil {
		t.Fatalf("ParseCoordinate failed: %v", err)
	}
	if name != "rand" || version != "0.9.2" {
		t.Errorf("parsed %q@%q", name, version)
	}

	name, version, err = ParseCoordinate("rand@0.9.2")
	if err != nil || name != "rand" || version != "0.9.2" {
		t.Errorf("bare coordinate parsed as %q@%q (%v)", name, version, err)
	}

	if _, _, err := ParseCoordinate("pkg:npm/leftpad@1.0.0"); err == nil {
		t.Error("expected error for foreign PURL type")
	}
}
