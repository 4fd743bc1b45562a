// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package agent is a thin client for the user's running SSH agent. git-id
// only ever lists loaded identities (for status) and offers newly
// provisioned keys to the agent; it never removes or signs anything.
package agent

import (
	"fmt"

	"golang.org/x/crypto/ssh"
	xagent "golang.org/x/crypto/ssh/agent"
)

// Key describes one identity currently loaded in the agent.
type Key struct {
	Fingerprint string
	Comment     string
	Type        string
}

// List returns the identities loaded in the running SSH agent. When no
// agent is reachable it returns (nil, nil): an absent agent is a normal
// condition for status output, not an error.
func List() ([]Key, error) {
	ag := getSSHAgent()
	if ag == nil {
		return nil, nil
	}
	loaded, err := ag.List()
	if err != nil {
		return nil, fmt.Errorf("list agent keys: %w", err)
	}
	keys := make([]Key, 0, len(loaded))
	for _, k := range loaded {
		keys = append(keys, Key{
			Fingerprint: ssh.FingerprintSHA256(k),
			Comment:     k.Comment,
			Type:        k.Format,
		})
	}
	return keys, nil
}

// Add offers a private key (OpenSSH PEM) to the running agent. It fails
// when no agent is reachable; callers treat that as a warning, since the
// key files themselves are already in place.
func Add(privateKeyPEM []byte, comment string) error {
	ag := getSSHAgent()
	if ag == nil {
		return fmt.Errorf("no SSH agent available (is SSH_AUTH_SOCK set?)")
	}
	parsed, err := ssh.ParseRawPrivateKey(privateKeyPEM)
	if err != nil {
		return fmt.Errorf("parse private key: %w", err)
	}
	if err := ag.Add(xagent.AddedKey{PrivateKey: parsed, Comment: comment}); err != nil {
		return fmt.Errorf("add key to agent: %w", err)
	}
	return nil
}
