// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"fmt"
	"os"

	"github.com/se7uh/git-id/internal/gitcfg"
	"github.com/se7uh/git-id/internal/model"
)

// Resolver turns an account selection into a mutation plan. It reads
// repository state but never writes anything.
type Resolver struct {
	Ctx Context
	Git GitConfig
	// Accounts is the full registry content; the ssh config refresh
	// effect needs every account, not just the selected one.
	Accounts []model.Account
}

// Resolve computes the plan for switching to acc at the given scope and
// remote mode.
//
// Local scope requires a repository with an origin remote. Global scope
// works anywhere: outside a repository, or in one whose origin is
// missing or unmanageable, the plan carries the identity keys only.
func (r *Resolver) Resolve(acc model.Account, scope gitcfg.Scope, mode RemoteMode) (*Plan, error) {
	plan := &Plan{Account: acc, Scope: scope, Mode: mode}

	inRepo := r.Git.InRepo()
	if scope == gitcfg.ScopeLocal && !inRepo {
		return nil, fmt.Errorf("not inside a git repository: %w", ErrNoOriginRemote)
	}

	var remote gitcfg.ParsedRemote
	rewrite := false
	if inRepo {
		if !r.Git.HasRemote("origin") {
			if scope == gitcfg.ScopeLocal {
				return nil, fmt.Errorf("repository has no origin remote: %w", ErrNoOriginRemote)
			}
		} else {
			url, err := r.Git.RemoteURL("origin")
			if err != nil {
				return nil, err
			}
			if parsed, ok := gitcfg.ParseRemote(url); ok {
				remote = parsed
				rewrite = true
			}
			// An origin URL we cannot parse is left alone: the identity
			// still switches, the transport stays whatever it was.
		}
	}

	effective, err := r.effectiveMode(acc, mode, rewrite)
	if err != nil {
		return nil, err
	}
	plan.Mode = effective

	plan.Effects = append(plan.Effects,
		SetConfigEffect{Key: "user.name", Value: acc.Username, Scope: scope},
		SetConfigEffect{Key: "user.email", Value: acc.Email, Scope: scope},
	)

	if rewrite {
		switch effective {
		case ModeSSH:
			plan.Effects = append(plan.Effects,
				WriteSSHConfigEffect{Path: r.Ctx.SSHConfigPath(), Accounts: r.Accounts},
				SetRemoteURLEffect{Remote: "origin", URL: gitcfg.BuildSSHURL(acc, remote.Owner, remote.Repo)},
			)
		case ModeHTTPS:
			plan.Effects = append(plan.Effects,
				SetRemoteURLEffect{Remote: "origin", URL: gitcfg.BuildHTTPSURL(acc.HTTPSToken, acc.EffectiveHost(), remote.Owner, remote.Repo)},
			)
		}
	}

	return plan, nil
}

// effectiveMode turns ModeAuto into a concrete transport and validates
// that the requested transport has a credential behind it. Forced modes
// never fall back: asking for a transport the account cannot serve is an
// error even when the other one would work.
func (r *Resolver) effectiveMode(acc model.Account, mode RemoteMode, rewrite bool) (RemoteMode, error) {
	switch mode {
	case ModeSSH:
		if !r.keyFileExists(acc) {
			return mode, fmt.Errorf("account %s has no ssh key on disk: %w", acc.ID(), ErrNoUsableCredential)
		}
		return ModeSSH, nil
	case ModeHTTPS:
		if acc.HTTPSToken == "" {
			return mode, fmt.Errorf("account %s has no https token: %w", acc.ID(), ErrNoUsableCredential)
		}
		return ModeHTTPS, nil
	}

	if r.keyFileExists(acc) {
		return ModeSSH, nil
	}
	if acc.HTTPSToken != "" {
		return ModeHTTPS, nil
	}
	if rewrite {
		return ModeAuto, fmt.Errorf("account %s has neither an ssh key on disk nor an https token: %w", acc.ID(), ErrNoUsableCredential)
	}
	// Identity-only plan: nothing needs a credential.
	return ModeAuto, nil
}

func (r *Resolver) keyFileExists(acc model.Account) bool {
	if acc.SSHKey == "" {
		return false
	}
	_, err := os.Stat(r.Ctx.ExpandHome(acc.SSHKey))
	return err == nil
}
