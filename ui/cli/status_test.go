// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"strings"
	"testing"

	"github.com/se7uh/git-id/internal/agent"
	"github.com/se7uh/git-id/internal/core"
)

func TestStatusOutsideRepo(t *testing.T) {
	git, _ := setupTestEnv(t)
	mustExecute(t, nil, "add", "alice", "--email", "alice@example.com")

	git.cfg["global:user.email"] = "alice@example.com"
	git.cfg["global:user.name"] = "Alice"

	out := mustExecute(t, nil, "status")
	if !strings.Contains(out, "not inside a git repository") {
		t.Errorf("repo line missing:\n%s", out)
	}
	if !strings.Contains(out, "active account") || !strings.Contains(out, "alice@github.com") {
		t.Errorf("match missing:\n%s", out)
	}
}

func TestStatusEmailWinsOverRemoteWithMismatch(t *testing.T) {
	git, _ := setupTestEnv(t)
	mustExecute(t, nil, "add", "alice", "--email", "alice@example.com")
	mustExecute(t, nil, "add", "bob", "--email", "bob@example.com")

	git.inRepo = true
	git.remotes["origin"] = "git@github.com-bob:bob/tool.git"
	git.cfg["local:user.email"] = "alice@example.com"

	out := mustExecute(t, nil, "status")
	if !strings.Contains(out, "active account: alice@github.com") || !strings.Contains(out, "via email") {
		t.Errorf("email match missing:\n%s", out)
	}
	if !strings.Contains(out, "origin remote does not match alice@github.com") {
		t.Errorf("mismatch warning missing:\n%s", out)
	}
}

func TestStatusMatchByRemoteWithoutEmail(t *testing.T) {
	git, _ := setupTestEnv(t)
	mustExecute(t, nil, "add", "bob", "--email", "bob@example.com")

	git.inRepo = true
	git.remotes["origin"] = "git@github.com-bob:bob/tool.git"

	out := mustExecute(t, nil, "status")
	if !strings.Contains(out, "bob@github.com") || !strings.Contains(out, "via remote") {
		t.Errorf("remote match missing:\n%s", out)
	}
	if strings.Contains(out, "warning") {
		t.Errorf("no email evidence, no warning expected:\n%s", out)
	}
}

func TestStatusAmbiguous(t *testing.T) {
	git, _ := setupTestEnv(t)
	mustExecute(t, nil, "add", "alice", "--email", "shared@example.com")
	mustExecute(t, nil, "add", "alice", "--email", "shared@example.com", "--host", "gitlab.com")

	git.cfg["global:user.email"] = "shared@example.com"

	out := mustExecute(t, nil, "status")
	if !strings.Contains(out, "matches several accounts") {
		t.Errorf("ambiguity missing:\n%s", out)
	}
	if !strings.Contains(out, "alice@github.com") || !strings.Contains(out, "alice@gitlab.com") {
		t.Errorf("candidates missing:\n%s", out)
	}
}

func TestStatusUnmatchedNeverFails(t *testing.T) {
	setupTestEnv(t)
	out := mustExecute(t, nil, "status")
	if !strings.Contains(out, "no registered account matches") {
		t.Errorf("unmatched line missing:\n%s", out)
	}
}

func TestStatusAgentListing(t *testing.T) {
	setupTestEnv(t)

	prev := agentLister
	agentLister = core.AgentListerFunc(func() ([]agent.Key, error) {
		return []agent.Key{{Fingerprint: "SHA256:abcdef", Comment: "alice@github.com", Type: "ssh-ed25519"}}, nil
	})
	defer func() { agentLister = prev }()

	// Agent keys are part of the default output, no flag needed.
	out := mustExecute(t, nil, "status")
	if !strings.Contains(out, "SHA256:abcdef") {
		t.Errorf("agent key missing:\n%s", out)
	}

	// The old --agent flag is still accepted.
	out = mustExecute(t, nil, "status", "--agent")
	if !strings.Contains(out, "SHA256:abcdef") {
		t.Errorf("agent key missing with flag:\n%s", out)
	}

	agentLister = core.AgentListerFunc(func() ([]agent.Key, error) { return nil, nil })
	out = mustExecute(t, nil, "status")
	if !strings.Contains(out, "no keys loaded") {
		t.Errorf("empty agent line missing:\n%s", out)
	}
}
