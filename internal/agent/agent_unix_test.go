//go:build !windows
// +build !windows

// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package agent

import (
	"net"
	"path/filepath"
	"testing"

	xagent "golang.org/x/crypto/ssh/agent"

	"github.com/se7uh/git-id/internal/sshkey"
)

// startTestAgent serves an in-process keyring agent on a unix socket and
// points SSH_AUTH_SOCK at it.
func startTestAgent(t *testing.T) xagent.Agent {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "agent.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	keyring := xagent.NewKeyring()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go xagent.ServeAgent(keyring, conn)
		}
	}()

	t.Setenv("SSH_AUTH_SOCK", sock)
	return keyring
}

func TestListWithoutAgent(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	keys, err := List()
	if err != nil {
		t.Fatalf("List without agent: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %v, want none", keys)
	}
}

func TestAddWithoutAgentFails(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	if err := Add([]byte("irrelevant"), "x"); err == nil {
		t.Error("expected error without an agent")
	}
}

func TestAddAndList(t *testing.T) {
	startTestAgent(t)

	pub, priv, err := sshkey.GenerateEd25519("agent-test")
	if err != nil {
		t.Fatal(err)
	}
	if err := Add([]byte(priv), "agent-test"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	keys, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("loaded keys = %d, want 1", len(keys))
	}
	if keys[0].Comment != "agent-test" {
		t.Errorf("comment = %q", keys[0].Comment)
	}

	wantFP, err := sshkey.Fingerprint(pub)
	if err != nil {
		t.Fatal(err)
	}
	if keys[0].Fingerprint != wantFP {
		t.Errorf("fingerprint = %s, want %s", keys[0].Fingerprint, wantFP)
	}
}
