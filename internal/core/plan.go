// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"fmt"

	"github.com/se7uh/git-id/internal/gitcfg"
	"github.com/se7uh/git-id/internal/model"
)

// RemoteMode selects how origin should authenticate after a switch.
type RemoteMode string

const (
	// ModeAuto picks ssh when the account's key file exists, https when
	// a token is configured, and fails otherwise.
	ModeAuto RemoteMode = "auto"
	// ModeSSH forces the alias ssh URL form.
	ModeSSH RemoteMode = "ssh"
	// ModeHTTPS forces the https URL form with the account token.
	ModeHTTPS RemoteMode = "https"
)

// Effect is one concrete mutation in a plan. The set of effect types is
// closed; the applier executes them in plan order.
type Effect interface {
	// Describe renders the one-line human summary shown for dry runs.
	Describe() string

	apply(a *Applier) error
}

// SetConfigEffect writes one git config key at a scope.
type SetConfigEffect struct {
	Key   string
	Value string
	Scope gitcfg.Scope
}

func (e SetConfigEffect) Describe() string {
	return fmt.Sprintf("set %s config %s = %q", e.Scope, e.Key, e.Value)
}

func (e SetConfigEffect) apply(a *Applier) error {
	return a.Git.ConfigSet(e.Key, e.Value, e.Scope)
}

// SetRemoteURLEffect rewrites the URL of a named remote.
type SetRemoteURLEffect struct {
	Remote string
	URL    string
}

func (e SetRemoteURLEffect) Describe() string {
	return fmt.Sprintf("set remote %s url to %s", e.Remote, redactURL(e.URL))
}

func (e SetRemoteURLEffect) apply(a *Applier) error {
	return a.Git.SetRemoteURL(e.Remote, e.URL)
}

// WriteSSHConfigEffect regenerates the managed host stanzas in the ssh
// client config so the account alias resolves before the remote uses it.
type WriteSSHConfigEffect struct {
	Path     string
	Accounts []model.Account
}

func (e WriteSSHConfigEffect) Describe() string {
	return fmt.Sprintf("refresh managed host entries in %s", e.Path)
}

// Plan is the ordered list of mutations switching to an account implies.
// Computing a plan never touches anything; the Applier does.
type Plan struct {
	Account model.Account
	Scope   gitcfg.Scope
	Mode    RemoteMode // effective mode after auto resolution
	Effects []Effect
}
