// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package gitcfg

import (
	"fmt"
	"strings"

	"github.com/se7uh/git-id/internal/model"
)

// RemoteKind is the transport of a parsed remote URL.
type RemoteKind string

const (
	// RemoteSSH is the scp-like git@host:owner/repo.git form.
	RemoteSSH RemoteKind = "ssh"
	// RemoteHTTPS is the https://host/owner/repo.git form.
	RemoteHTTPS RemoteKind = "https"
)

// ParsedRemote is the decomposed form of a remote URL. Host is the real
// hosting host: a git-id alias like github.com-alice is already stripped
// back, with the alias itself kept in Alias for reverse lookups.
type ParsedRemote struct {
	Kind  RemoteKind
	Host  string
	Alias string // raw host component as it appeared, possibly an alias
	Owner string
	Repo  string
}

// ParseRemote decomposes an SSH or HTTPS remote URL. It preserves the
// owner/repo path and recognises git-id host aliases in the SSH form.
// ok is false for URL shapes git-id does not manage.
func ParseRemote(url string) (ParsedRemote, bool) {
	if rest, found := strings.CutPrefix(url, "git@"); found {
		rawHost, path, found := strings.Cut(rest, ":")
		if !found {
			return ParsedRemote{}, false
		}
		owner, repo, found := strings.Cut(strings.TrimSuffix(path, ".git"), "/")
		if !found || owner == "" || repo == "" {
			return ParsedRemote{}, false
		}
		host := rawHost
		if aliasHost, _, isAlias := model.ParseAlias(rawHost); isAlias {
			host = aliasHost
		}
		return ParsedRemote{Kind: RemoteSSH, Host: host, Alias: rawHost, Owner: owner, Repo: repo}, true
	}

	if rest, found := strings.CutPrefix(url, "https://"); found {
		// Drop embedded credentials (https://token@host/...).
		if _, after, hasCreds := strings.Cut(rest, "@"); hasCreds {
			rest = after
		}
		parts := strings.SplitN(strings.TrimSuffix(rest, ".git"), "/", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return ParsedRemote{}, false
		}
		return ParsedRemote{Kind: RemoteHTTPS, Host: parts[0], Alias: parts[0], Owner: parts[1], Repo: parts[2]}, true
	}

	return ParsedRemote{}, false
}

// BuildSSHURL renders the alias form used for per-account SSH transport:
// git@<host>-<username>:owner/repo.git.
func BuildSSHURL(acc model.Account, owner, repo string) string {
	return fmt.Sprintf("git@%s:%s/%s.git", acc.Alias(), owner, repo)
}

// BuildHTTPSURL renders the HTTPS form, embedding the access token when
// one is configured.
func BuildHTTPSURL(token, host, owner, repo string) string {
	if token != "" {
		return fmt.Sprintf("https://%s@%s/%s/%s.git", token, host, owner, repo)
	}
	return fmt.Sprintf("https://%s/%s/%s.git", host, owner, repo)
}
