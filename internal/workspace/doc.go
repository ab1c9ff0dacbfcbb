// Package workspace loads a workspace root: the workspace.toml member
// list, every member's package.toml, and the shared lockfile.
package workspace
