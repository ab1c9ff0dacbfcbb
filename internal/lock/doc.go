// Package lock reads and writes the shared workspace lockfile.
//
// All members of a workspace share a single lockfile, so an external
// package appears at most once: resolution unifies every member's
// constraints on it to one pinned version.
package lock
