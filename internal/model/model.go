// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core data types shared across git-id.
// An Account is a registered hosting identity; everything else about it
// (SSH host alias, account id) is derived, never stored.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultHost is assumed whenever an account does not name a host.
const DefaultHost = "github.com"

// Account represents one hosting identity (e.g. alice on github.com).
// It is uniquely identified by (Username, Host).
type Account struct {
	Username   string `toml:"username"`
	Email      string `toml:"email"`
	Host       string `toml:"host"`
	SSHKey     string `toml:"ssh_key"`
	HTTPSToken string `toml:"https_token"`
}

// EffectiveHost returns the account host, falling back to DefaultHost.
func (a Account) EffectiveHost() string {
	if a.Host == "" {
		return DefaultHost
	}
	return a.Host
}

// ID returns the user@host identifier used in selectors, config markers
// and log output.
func (a Account) ID() string {
	return fmt.Sprintf("%s@%s", a.Username, a.EffectiveHost())
}

// String returns the user@host representation.
func (a Account) String() string { return a.ID() }

// Alias returns the derived SSH host alias, "host-username". Appending
// the full username after the full host keeps the mapping injective over
// (host, username) pairs.
func (a Account) Alias() string {
	return fmt.Sprintf("%s-%s", a.EffectiveHost(), a.Username)
}

// emailRe is deliberately loose: one '@', no spaces, a dot in the domain.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the structural invariants of an account record.
// SSHKey and HTTPSToken are optional and not inspected here; the key file
// may legitimately not exist yet when the account is registered.
func (a Account) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return fmt.Errorf("account has empty username")
	}
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("account %s has empty email", a.ID())
	}
	if !emailRe.MatchString(a.Email) {
		return fmt.Errorf("account %s has invalid email %q", a.ID(), a.Email)
	}
	return nil
}

// ParseAlias reverses Alias: given "github.com-alice" it recovers
// (host, username). The username is the suffix after the last '-' that
// contains no dot; a raw hostname like "github.com" yields ok=false.
func ParseAlias(alias string) (host, username string, ok bool) {
	i := strings.LastIndex(alias, "-")
	if i <= 0 || i == len(alias)-1 {
		return "", "", false
	}
	suffix := alias[i+1:]
	if strings.Contains(suffix, ".") {
		return "", "", false
	}
	return alias[:i], suffix, true
}
