// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import "errors"

var (
	// ErrPathExists is returned when key generation would overwrite an
	// existing file. git-id never silently replaces key material.
	ErrPathExists = errors.New("key file already exists")

	// ErrKeyNotFound is returned when picking a public key that has no
	// matching private key alongside it.
	ErrKeyNotFound = errors.New("matching private key not found")
)
