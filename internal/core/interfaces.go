// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"github.com/se7uh/git-id/internal/agent"
	"github.com/se7uh/git-id/internal/gitcfg"
)

// GitConfig is the slice of git behaviour the resolver, applier and
// status matcher consume. *gitcfg.Client satisfies it; tests use fakes.
type GitConfig interface {
	InRepo() bool
	RepoName() string
	ConfigGet(key string, scope gitcfg.Scope) (string, error)
	ConfigSet(key, value string, scope gitcfg.Scope) error
	HasRemote(name string) bool
	RemoteURL(name string) (string, error)
	SetRemoteURL(name, url string) error
}

// AgentLister reads the identities currently loaded in the ssh agent.
// agent.List satisfies it; a missing agent yields an empty list.
type AgentLister interface {
	List() ([]agent.Key, error)
}

// AgentListerFunc adapts a plain function to AgentLister.
type AgentListerFunc func() ([]agent.Key, error)

// List calls the wrapped function.
func (f AgentListerFunc) List() ([]agent.Key, error) { return f() }
