// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package gitcfg

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/se7uh/git-id/internal/model"
)

// fakeRunner maps "arg arg arg" to canned results.
type fakeRunner struct {
	results map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(dir string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.results[key], nil
}

// exitOneError mimics a git process exiting 1 with silent stderr.
type exitOneError struct{}

func (exitOneError) Error() string { return "exit status 1" }
func (exitOneError) ExitCode() int { return 1 }

func missingKeyErr(args ...string) error {
	return &GitError{Args: args, Err: exitOneError{}}
}

func TestConfigGetUnsetKeyIsEmpty(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{
		"config --local --get user.email": missingKeyErr("config", "--local", "--get", "user.email"),
	}}
	c := NewClient("", WithRunner(r))

	got, err := c.ConfigGet("user.email", ScopeLocal)
	if err != nil {
		t.Fatalf("ConfigGet on unset key: %v", err)
	}
	if got != "" {
		t.Errorf("ConfigGet = %q, want empty", got)
	}
}

func TestConfigGetRealFailurePropagates(t *testing.T) {
	gitErr := &GitError{Args: []string{"config"}, Output: "fatal: not in a git directory", Err: errors.New("exit status 128")}
	r := &fakeRunner{errs: map[string]error{
		"config --local --get user.email": gitErr,
	}}
	c := NewClient("", WithRunner(r))

	if _, err := c.ConfigGet("user.email", ScopeLocal); err == nil {
		t.Fatal("expected error for fatal git failure")
	}
}

func TestConfigSetUsesScopeFlag(t *testing.T) {
	r := &fakeRunner{}
	c := NewClient("", WithRunner(r))
	if err := c.ConfigSet("user.name", "alice", ScopeGlobal); err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}
	want := "config --global user.name alice"
	if len(r.calls) != 1 || r.calls[0] != want {
		t.Errorf("git invocation = %v, want [%s]", r.calls, want)
	}
}

func TestRemoteNames(t *testing.T) {
	r := &fakeRunner{results: map[string]string{"remote": "origin\nupstream"}}
	c := NewClient("", WithRunner(r))
	names, err := c.RemoteNames()
	if err != nil {
		t.Fatalf("RemoteNames: %v", err)
	}
	if len(names) != 2 || names[0] != "origin" || names[1] != "upstream" {
		t.Errorf("RemoteNames = %v", names)
	}

	if !c.HasRemote("origin") || c.HasRemote("fork") {
		t.Error("HasRemote misreported")
	}
}

func TestRemoteNamesEmpty(t *testing.T) {
	r := &fakeRunner{}
	c := NewClient("", WithRunner(r))
	names, err := c.RemoteNames()
	if err != nil {
		t.Fatalf("RemoteNames: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("RemoteNames = %v, want none", names)
	}
}

func TestRemoteURLUnknownRemote(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{
		"remote get-url origin": &GitError{Args: []string{"remote"}, Output: "error: No such remote 'origin'", Err: errors.New("exit status 2")},
	}}
	c := NewClient("", WithRunner(r))
	url, err := c.RemoteURL("origin")
	if err != nil {
		t.Fatalf("RemoteURL on missing remote: %v", err)
	}
	if url != "" {
		t.Errorf("RemoteURL = %q, want empty", url)
	}
}

func TestGitErrorMessage(t *testing.T) {
	err := &GitError{Args: []string{"remote", "set-url", "origin", "x"}, Output: "fatal: nope", Err: fmt.Errorf("exit status 128")}
	if !strings.Contains(err.Error(), "fatal: nope") {
		t.Errorf("GitError.Error() = %q", err.Error())
	}
}

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want ParsedRemote
		ok   bool
	}{
		{
			name: "plain ssh",
			url:  "git@github.com:alice/my-repo.git",
			want: ParsedRemote{Kind: RemoteSSH, Host: "github.com", Alias: "github.com", Owner: "alice", Repo: "my-repo"},
			ok:   true,
		},
		{
			name: "aliased ssh",
			url:  "git@github.com-alice:alice/my-repo.git",
			want: ParsedRemote{Kind: RemoteSSH, Host: "github.com", Alias: "github.com-alice", Owner: "alice", Repo: "my-repo"},
			ok:   true,
		},
		{
			name: "ssh without .git suffix",
			url:  "git@gitlab.com:group/tool",
			want: ParsedRemote{Kind: RemoteSSH, Host: "gitlab.com", Alias: "gitlab.com", Owner: "group", Repo: "tool"},
			ok:   true,
		},
		{
			name: "https",
			url:  "https://github.com/alice/my-repo.git",
			want: ParsedRemote{Kind: RemoteHTTPS, Host: "github.com", Alias: "github.com", Owner: "alice", Repo: "my-repo"},
			ok:   true,
		},
		{
			name: "https with embedded token",
			url:  "https://ghp_token123@github.com/alice/my-repo.git",
			want: ParsedRemote{Kind: RemoteHTTPS, Host: "github.com", Alias: "github.com", Owner: "alice", Repo: "my-repo"},
			ok:   true,
		},
		{name: "ssh url without path", url: "git@github.com", ok: false},
		{name: "https url without repo", url: "https://github.com/alice", ok: false},
		{name: "unrecognised", url: "ftp://example.com/x", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRemote(tt.url)
			if ok != tt.ok {
				t.Fatalf("ParseRemote(%q) ok = %v, want %v", tt.url, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseRemote(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestBuildURLs(t *testing.T) {
	acc := model.Account{Username: "alice", Host: "github.com"}
	if got := BuildSSHURL(acc, "alice", "my-repo"); got != "git@github.com-alice:alice/my-repo.git" {
		t.Errorf("BuildSSHURL = %q", got)
	}
	if got := BuildHTTPSURL("", "github.com", "alice", "my-repo"); got != "https://github.com/alice/my-repo.git" {
		t.Errorf("BuildHTTPSURL without token = %q", got)
	}
	if got := BuildHTTPSURL("ghp_tok", "github.com", "alice", "my-repo"); got != "https://ghp_tok@github.com/alice/my-repo.git" {
		t.Errorf("BuildHTTPSURL with token = %q", got)
	}
}
