// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "testing"

func TestAccountID(t *testing.T) {
	a := Account{Username: "alice", Host: "github.com"}
	if got := a.ID(); got != "alice@github.com" {
		t.Errorf("ID() = %q, want %q", got, "alice@github.com")
	}

	// Host defaults to github.com when empty.
	b := Account{Username: "bob"}
	if got := b.ID(); got != "bob@github.com" {
		t.Errorf("ID() with empty host = %q, want %q", got, "bob@github.com")
	}
}

func TestAccountAlias(t *testing.T) {
	tests := []struct {
		username string
		host     string
		want     string
	}{
		{"alice", "github.com", "github.com-alice"},
		{"bob", "", "github.com-bob"},
		{"deploy", "gitlab.example.org", "gitlab.example.org-deploy"},
	}
	for _, tt := range tests {
		a := Account{Username: tt.username, Host: tt.host}
		if got := a.Alias(); got != tt.want {
			t.Errorf("Alias(%q, %q) = %q, want %q", tt.host, tt.username, got, tt.want)
		}
	}
}

// TestAliasInjective checks that distinct (host, username) pairs never
// collide on their alias.
func TestAliasInjective(t *testing.T) {
	accounts := []Account{
		{Username: "alice", Host: "github.com"},
		{Username: "alice", Host: "gitlab.com"},
		{Username: "bob", Host: "github.com"},
		{Username: "bob", Host: "gitlab.com"},
		{Username: "alice2", Host: "github.com"},
		{Username: "work", Host: "git.corp.example.com"},
	}
	seen := map[string]string{}
	for _, a := range accounts {
		alias := a.Alias()
		if prev, dup := seen[alias]; dup {
			t.Errorf("alias collision: %s and %s both map to %q", prev, a.ID(), alias)
		}
		seen[alias] = a.ID()
	}
}

func TestParseAlias(t *testing.T) {
	tests := []struct {
		alias    string
		wantHost string
		wantUser string
		wantOK   bool
	}{
		{"github.com-alice", "github.com", "alice", true},
		{"gitlab.example.org-deploy", "gitlab.example.org", "deploy", true},
		// A bare hostname is not an alias.
		{"github.com", "", "", false},
		// Dashes inside the host but a dotted suffix: still no alias.
		{"some-host.example.com", "", "", false},
		{"", "", "", false},
		{"-alice", "", "", false},
	}
	for _, tt := range tests {
		host, user, ok := ParseAlias(tt.alias)
		if host != tt.wantHost || user != tt.wantUser || ok != tt.wantOK {
			t.Errorf("ParseAlias(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.alias, host, user, ok, tt.wantHost, tt.wantUser, tt.wantOK)
		}
	}
}

// TestParseAliasRoundTrip checks the reverse lookup on generated aliases.
func TestParseAliasRoundTrip(t *testing.T) {
	for _, a := range []Account{
		{Username: "alice", Host: "github.com"},
		{Username: "ci", Host: "git.internal.example.org"},
	} {
		host, user, ok := ParseAlias(a.Alias())
		if !ok {
			t.Fatalf("ParseAlias(%q): not recognised as alias", a.Alias())
		}
		if host != a.EffectiveHost() || user != a.Username {
			t.Errorf("round trip of %s: got (%q, %q)", a.ID(), host, user)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		acc     Account
		wantErr bool
	}{
		{"valid", Account{Username: "alice", Email: "alice@example.com"}, false},
		{"empty username", Account{Email: "a@b.co"}, true},
		{"empty email", Account{Username: "alice"}, true},
		{"email without domain dot", Account{Username: "alice", Email: "alice@localhost"}, true},
		{"email with spaces", Account{Username: "alice", Email: "a b@example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
