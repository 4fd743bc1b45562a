// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import "errors"

var (
	// ErrNoOriginRemote is returned when a repo-scoped operation needs
	// an origin remote and the repository has none (or we are not
	// inside a repository at all).
	ErrNoOriginRemote = errors.New("no origin remote")

	// ErrNoUsableCredential is returned when the requested remote mode
	// has no credential to work with: no key file on disk for ssh, no
	// token for https.
	ErrNoUsableCredential = errors.New("no usable credential")
)
