package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/git-pkgs/workspaces/internal/core"
	"github.com/git-pkgs/workspaces/internal/lock"
	"github.com/git-pkgs/workspaces/internal/registry"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// fixture writes a two member workspace and a seeded registry snapshot,
// returning the workspace root and the snapshot path.
func fixture(t *testing.T) (root, snapshot string) {
	t.Helper()
	root = t.TempDir()
	writeFile(t, filepath.Join(root, "workspace.toml"), `
[workspace]
members = ["adder", "add_one"]
`)
	writeFile(t, filepath.Join(root, "adder", "package.toml"), `
[package]
name = "adder"
version = "0.1.0"
license = "MIT"

[dependencies]
add_one = { path = "../add_one" }
rand = "0.9.0"
`)
	writeFile(t, filepath.Join(root, "add_one", "package.toml"), `
[package]
name = "add_one"
version = "0.1.0"
license = "MIT OR Apache-2.0"
`)

	snapshot = filepath.Join(t.TempDir(), "registry.yaml")
	reg, err := registry.OpenMemory(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"0.9.0", "0.9.2"} {
		err := reg.Publish(context.Background(), core.Publication{
			Name: "rand", Version: v, Owner: "rand-maintainers",
		})
		if err != nil {
			t.Fatalf("seeding rand %s: %v", v, err)
		}
	}
	return root, snapshot
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestResolveCommandWritesLockfile(t *testing.T) {
	root, snapshot := fixture(t)

	out, err := run(t, "resolve", "--root", root, "--registry", snapshot)
	if err != nil {
		t.Fatalf("resolve failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "rand 0.9.2") {
		t.Errorf("output missing pinned version:\n%s", out)
	}

	lf, err := lock.Load(filepath.Join(root, lock.FileName))
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	entry, ok := lf.Get("rand")
	if !ok || entry.Version != "0.9.2" {
		t.Errorf("lockfile rand entry = %+v", entry)
	}
}

func TestBuildCommandSelectsMembersAndProfile(t *testing.T) {
	root, snapshot := fixture(t)

	out, err := run(t, "build", "--root", root, "--registry", snapshot,
		"--profile", "release", "-p", "adder")
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "profile release") {
		t.Errorf("output missing profile:\n%s", out)
	}
	if !strings.Contains(out, "adder 0.1.0") {
		t.Errorf("output missing selected member:\n%s", out)
	}
	if strings.Contains(out, "add_one 0.1.0 (edition") {
		t.Errorf("unselected member planned:\n%s", out)
	}
	if !strings.Contains(out, "opt-level 3") {
		t.Errorf("release opt-level not applied:\n%s", out)
	}
}

func TestBuildCommandUnknownMember(t *testing.T) {
	root, snapshot := fixture(t)

	out, err := run(t, "build", "--root", root, "--registry", snapshot, "-p", "ghost")
	if err == nil {
		t.Fatalf("expected error for unknown member, got:\n%s", out)
	}
}

func TestPublishThenYankCommands(t *testing.T) {
	root, snapshot := fixture(t)

	out, err := run(t, "publish", "--root", root, "--registry", snapshot,
		"-p", "add_one", "--owner", "adder-team")
	if err != nil {
		t.Fatalf("publish failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "published pkg:cargo/add_one@0.1.0") {
		t.Errorf("publish output = %q", out)
	}

	// Republishing the same version must fail.
	if _, err := run(t, "publish", "--root", root, "--registry", snapshot,
		"-p", "add_one", "--owner", "adder-team"); err == nil {
		t.Fatal("expected duplicate version error")
	}

	out, err = run(t, "yank", "--registry", snapshot, "add_one@0.1.0")
	if err != nil {
		t.Fatalf("yank failed: %v\n%s", err, out)
	}

	out, err = run(t, "unyank", "--registry", snapshot, "pkg:cargo/add_one@0.1.0")
	if err != nil {
		t.Fatalf("unyank failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "unyanked pkg:cargo/add_one@0.1.0") {
		t.Errorf("unyank output = %q", out)
	}
}

func TestVerifyCommand(t *testing.T) {
	root, _ := fixture(t)

	out, err := run(t, "verify", "--root", root)
	if err != nil {
		t.Fatalf("verify failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok: 2 members verified") {
		t.Errorf("verify output = %q", out)
	}
}

func TestVerifyCommandAllowsMissingLicense(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "workspace.toml"), `
[workspace]
members = ["adder"]
`)
	writeFile(t, filepath.Join(root, "adder", "package.toml"), `
[package]
name = "adder"
version = "0.1.0"
`)

	out, err := run(t, "verify", "--root", root)
	if err != nil {
		t.Fatalf("verify failed for license-less member: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok: 1 members verified") {
		t.Errorf("verify output = %q", out)
	}
}

func TestVerifyCommandFlagsDanglingPath(t *testing.T) {
	root, _ := fixture(t)
	writeFile(t, filepath.Join(root, "adder", "package.toml"), `
[package]
name = "adder"
version = "0.1.0"
license = "MIT"

[dependencies]
add_one = { path = "../missing" }
`)

	out, err := run(t, "verify", "--root", root)
	if err == nil {
		t.Fatalf("expected verify to fail, got:\n%s", out)
	}
	if !strings.Contains(out, "not a workspace member") {
		t.Errorf("verify output = %q", out)
	}
}
