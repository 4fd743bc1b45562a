// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package registry

import "errors"

// Sentinel errors for registry operations. Callers match these with
// errors.Is; the wrapped message carries the account or path involved.
var (
	// ErrCorruptStore is returned when the accounts file cannot be parsed
	// or contains two accounts with the same (username, host).
	ErrCorruptStore = errors.New("corrupt accounts store")

	// ErrConflict is returned when adding an account whose (username, host)
	// already exists.
	ErrConflict = errors.New("account already exists")

	// ErrNotFound is returned when a selector matches no account.
	ErrNotFound = errors.New("account not found")

	// ErrAmbiguous is returned when a bare username selector matches
	// accounts on more than one host.
	ErrAmbiguous = errors.New("ambiguous account selector")
)
