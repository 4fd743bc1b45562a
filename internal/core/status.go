// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"github.com/se7uh/git-id/internal/agent"
	"github.com/se7uh/git-id/internal/gitcfg"
	"github.com/se7uh/git-id/internal/model"
	"github.com/se7uh/git-id/internal/sshkey"
)

// Evidence is the raw state the status matcher works from. Gathering is
// best effort: unreadable config, a missing agent or a broken remote all
// just leave their field empty.
type Evidence struct {
	InRepo   bool
	RepoName string

	GlobalName  string
	GlobalEmail string
	LocalName   string
	LocalEmail  string

	OriginURL    string
	Origin       gitcfg.ParsedRemote
	OriginParsed bool

	AgentKeys []agent.Key
}

// EffectiveEmail is the email git would actually commit with: local
// config when inside a repository, global otherwise.
func (ev Evidence) EffectiveEmail() string {
	if ev.InRepo && ev.LocalEmail != "" {
		return ev.LocalEmail
	}
	return ev.GlobalEmail
}

// EffectiveName mirrors EffectiveEmail for user.name.
func (ev Evidence) EffectiveName() string {
	if ev.InRepo && ev.LocalName != "" {
		return ev.LocalName
	}
	return ev.GlobalName
}

// GatherEvidence collects identity signals from git config, the origin
// remote and the ssh agent. lister may be nil when agent state is not
// wanted.
func GatherEvidence(git GitConfig, lister AgentLister) Evidence {
	ev := Evidence{InRepo: git.InRepo()}

	ev.GlobalName, _ = git.ConfigGet("user.name", gitcfg.ScopeGlobal)
	ev.GlobalEmail, _ = git.ConfigGet("user.email", gitcfg.ScopeGlobal)

	if ev.InRepo {
		ev.RepoName = git.RepoName()
		ev.LocalName, _ = git.ConfigGet("user.name", gitcfg.ScopeLocal)
		ev.LocalEmail, _ = git.ConfigGet("user.email", gitcfg.ScopeLocal)
		if git.HasRemote("origin") {
			if url, err := git.RemoteURL("origin"); err == nil && url != "" {
				ev.OriginURL = url
				ev.Origin, ev.OriginParsed = gitcfg.ParseRemote(url)
			}
		}
	}

	if lister != nil {
		if keys, err := lister.List(); err == nil {
			ev.AgentKeys = keys
		}
	}

	return ev
}

// MatchState tags the outcome of reverse identity inference.
type MatchState int

const (
	// Unmatched means no registered account fits the evidence.
	Unmatched MatchState = iota
	// Matched means exactly one account fits.
	Matched
	// Ambiguous means several accounts fit equally well; Candidates
	// lists them.
	Ambiguous
)

// MatchResult is the status matcher's verdict. Via names the signal the
// match came from ("remote" for an origin alias, "email" for git config).
// Mismatch flags a matched account whose email disagrees with effective
// git config; it is informational, never fatal.
type MatchResult struct {
	State      MatchState
	Account    *model.Account
	Candidates []model.Account
	Via        string
	Mismatch   bool
}

// Match infers which registered account the evidence points at. The
// effective email is the primary signal; the origin remote alias serves
// as a cross-check on an email match and only identifies an account on
// its own when no email evidence exists. Ambiguity and absence are
// reported, never guessed away.
func Match(accounts []model.Account, ev Evidence) MatchResult {
	remote := aliasAccount(accounts, ev)

	email := ev.EffectiveEmail()
	if email != "" {
		var hits []model.Account
		for _, acc := range accounts {
			if acc.Email == email {
				hits = append(hits, acc)
			}
		}
		switch len(hits) {
		case 0:
			// fall through to the remote alias below
		case 1:
			acc := hits[0]
			return MatchResult{
				State:    Matched,
				Account:  &acc,
				Via:      "email",
				Mismatch: remote != nil && remote.ID() != acc.ID(),
			}
		default:
			// Same email on several accounts: the origin alias can
			// settle which one the repository actually uses.
			if remote != nil {
				for i := range hits {
					if hits[i].ID() == remote.ID() {
						acc := hits[i]
						return MatchResult{State: Matched, Account: &acc, Via: "email"}
					}
				}
			}
			return MatchResult{State: Ambiguous, Candidates: hits, Via: "email"}
		}
	}

	if remote != nil {
		acc := *remote
		return MatchResult{
			State:    Matched,
			Account:  &acc,
			Via:      "remote",
			Mismatch: email != "" && email != acc.Email,
		}
	}
	return MatchResult{State: Unmatched}
}

// aliasAccount maps the origin remote's host alias back to a registered
// account, or nil when the origin is absent, not SSH, or uses an alias
// no account owns.
func aliasAccount(accounts []model.Account, ev Evidence) *model.Account {
	if !ev.OriginParsed || ev.Origin.Kind != gitcfg.RemoteSSH {
		return nil
	}
	for i := range accounts {
		if accounts[i].Alias() == ev.Origin.Alias {
			return &accounts[i]
		}
	}
	return nil
}

// KeyOwners maps agent key fingerprints to the account that owns the
// key, by fingerprinting each registered account's public key file.
// Unreadable key files are skipped.
func KeyOwners(ctx Context, accounts []model.Account) map[string]string {
	owners := make(map[string]string)
	for _, acc := range accounts {
		if acc.SSHKey == "" {
			continue
		}
		fp, err := sshkey.FingerprintFile(ctx.ExpandHome(acc.SSHKey) + ".pub")
		if err != nil {
			continue
		}
		owners[fp] = acc.ID()
	}
	return owners
}
