// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core wires the identity pieces together: it resolves an
// account plus a scope into a mutation plan, applies that plan to git
// config and remotes, and infers the active identity back out of the
// repository state.
package core

import (
	"path/filepath"
	"strings"
	"time"
)

// Context carries the ambient state an operation runs against. Commands
// build one up front so the rest of the code never reads the process
// environment on its own.
type Context struct {
	// RepoPath is the working directory git commands run in. Empty
	// means the current directory.
	RepoPath string

	// HomeDir anchors ~/.ssh and "~" expansion in key paths.
	HomeDir string

	// KeysDir overrides HomeDir/.ssh as the key directory when set.
	KeysDir string

	// Now is the timestamp used for anything time-stamped during the
	// operation.
	Now time.Time
}

// SSHDir returns the key directory: KeysDir when set, HomeDir/.ssh
// otherwise.
func (c Context) SSHDir() string {
	if c.KeysDir != "" {
		return c.KeysDir
	}
	return filepath.Join(c.HomeDir, ".ssh")
}

// SSHConfigPath returns the ssh client config file the managed host
// stanzas live in.
func (c Context) SSHConfigPath() string {
	return filepath.Join(c.SSHDir(), "config")
}

// ExpandHome resolves a leading "~" or "~/" against the context home.
// Paths without a tilde come back unchanged.
func (c Context) ExpandHome(path string) string {
	if path == "~" {
		return c.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(c.HomeDir, path[2:])
	}
	return path
}
