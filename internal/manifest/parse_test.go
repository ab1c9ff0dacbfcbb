package manifest

import (
	"testing"

	"github.com/git-pkgs/workspaces/internal/core"
)

func TestParseManifest_valid(t *testing.T) {
	data := []byte(`
[package]
name = "adder"
version = "0.1.0"
edition = "2021"
description = "Adds numbers"
license = "MIT OR Apache-2.0"
keywords = ["math"]

[dependencies]
rand = "0.9.0"
add-one = { path = "../add_one" }

[dev-dependencies]
quickcheck = "1.0"

[profile.release]
opt-level = 1
`)
	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Package.Name != "adder" {
		t.Errorf("name = %q, want adder", m.Package.Name)
	}
	if m.Package.License != "MIT OR Apache-2.0" {
		t.Errorf("license = %q", m.Package.License)
	}
	if len(m.Dependencies) != 3 {
		t.Fatalf("dependency count = %d, want 3", len(m.Dependencies))
	}

	// Sorted by name.
	if m.Dependencies[0].Name != "add-one" || !m.Dependencies[0].IsLocal() {
		t.Errorf("add-one should be a local dependency: %+v", m.Dependencies[0])
	}
	if m.Dependencies[1].Name != "quickcheck" || m.Dependencies[1].Scope != core.Development {
		t.Errorf("quickcheck should be a dev dependency: %+v", m.Dependencies[1])
	}
	if m.Dependencies[2].Constraint != "0.9.0" {
		t.Errorf("rand constraint = %q, want 0.9.0", m.Dependencies[2].Constraint)
	}

	if m.Profiles["release"]["opt-level"] != int64(1) {
		t.Errorf("release opt-level override = %v", m.Profiles["release"]["opt-level"])
	}
}

func TestParseManifest_missingPackage(t *testing.T) {
	if _, err := ParseManifest([]byte(`[dependencies]`)); err == nil {
		t.Fatal("expected error for missing [package]")
	}
}

func TestParseManifest_missingName(t *testing.T) {
	data := []byte(`
[package]
version = "0.1.0"
`)
	if _, err := ParseManifest(data); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestParseManifest_badVersion(t *testing.T) {
	data := []byte(`
[package]
name = "adder"
version = "not-a-version"
`)
	if _, err := ParseManifest(data); err == nil {
		t.Fatal("expected error for invalid version")
	}
}

func TestParseManifest_badLicense(t *testing.T) {
	data := []byte(`
[package]
name = "adder"
version = "0.1.0"
license = "NotALicense-9.9"
`)
	if _, err := ParseManifest(data); err == nil {
		t.Fatal("expected error for invalid SPDX expression")
	}
}

func TestParseManifest_unknownEdition(t *testing.T) {
	data := []byte(`
[package]
name = "adder"
version = "0.1.0"
edition = "1999"
`)
	if _, err := ParseManifest(data); err == nil {
		t.Fatal("expected error for unknown edition")
	}
}

func TestParseManifest_dependencyBothPathAndVersion(t *testing.T) {
	data := []byte(`
[package]
name = "adder"
version = "0.1.0"

[dependencies]
add-one = { path = "../add_one", version = "0.1.0" }
`)
	if _, err := ParseManifest(data); err == nil {
		t.Fatal("expected error for dependency with both path and version")
	}
}

func TestParseManifest_dependencySiblingPath(t *testing.T) {
	data := []byte(`
[package]
name = "adder"
version = "0.1.0"

[dependencies]
add_one = { path = "../add_one" }
`)
	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("sibling path reference rejected: %v", err)
	}
	if !m.Dependencies[0].IsLocal() || m.Dependencies[0].Path != "../add_one" {
		t.Errorf("add_one dependency = %+v", m.Dependencies[0])
	}
}

func TestParseManifest_dependencyAbsolutePath(t *testing.T) {
	data := []byte(`
[package]
name = "adder"
version = "0.1.0"

[dependencies]
other = { path = "/srv/other" }
`)
	if _, err := ParseManifest(data); err == nil {
		t.Fatal("expected error for absolute dependency path")
	}
}

func TestParseWorkspace_valid(t *testing.T) {
	data := []byte(`
[workspace]
members = ["adder", "add_one"]

[profile.release]
lto = true
`)
	ws, err := ParseWorkspace(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.Members) != 2 {
		t.Errorf("members = %v", ws.Members)
	}
	if ws.TargetDir != "target" {
		t.Errorf("target-dir default = %q, want target", ws.TargetDir)
	}
	if ws.Profiles["release"]["lto"] != true {
		t.Errorf("release lto override = %v", ws.Profiles["release"]["lto"])
	}
}

func TestParseWorkspace_noMembers(t *testing.T) {
	if _, err := ParseWorkspace([]byte(`[workspace]`)); err == nil {
		t.Fatal("expected error for empty members")
	}
}

func TestParseWorkspace_duplicateMember(t *testing.T) {
	data := []byte(`
[workspace]
members = ["adder", "adder"]
`)
	if _, err := ParseWorkspace(data); err == nil {
		t.Fatal("expected error for duplicate member")
	}
}
