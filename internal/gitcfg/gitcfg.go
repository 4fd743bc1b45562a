// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package gitcfg talks to the git binary. git-id treats git configuration
// as a two-scope key-value store plus named remotes; everything here is a
// thin, testable wrapper over `git` subprocess calls.
package gitcfg

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Scope selects where a git config mutation lands.
type Scope string

const (
	// ScopeLocal applies to the current repository only.
	ScopeLocal Scope = "local"
	// ScopeGlobal applies to the user's global git configuration.
	ScopeGlobal Scope = "global"
)

// Runner executes one git invocation in dir and returns trimmed stdout.
// It exists so tests can fake git entirely.
type Runner interface {
	Run(dir string, args ...string) (string, error)
}

// GitError carries the failing git command and its stderr output.
type GitError struct {
	Args   []string
	Output string
	Err    error
}

func (e *GitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), e.Output)
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// execRunner shells out to the real git binary.
type execRunner struct{}

func (execRunner) Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &GitError{Args: args, Output: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client runs git commands for one working directory. An empty dir means
// the process working directory, which is what the CLI uses.
type Client struct {
	dir    string
	runner Runner
}

// Option configures a Client.
type Option func(*Client)

// WithRunner injects a fake runner; used by tests.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// NewClient returns a git client operating in dir.
func NewClient(dir string, opts ...Option) *Client {
	c := &Client{dir: dir, runner: execRunner{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InRepo reports whether the client's directory is inside a git work tree.
func (c *Client) InRepo() bool {
	_, err := c.runner.Run(c.dir, "rev-parse", "--git-dir")
	return err == nil
}

// RepoName returns the basename of the repository top level, or "." when
// it cannot be determined.
func (c *Client) RepoName() string {
	top, err := c.runner.Run(c.dir, "rev-parse", "--show-toplevel")
	if err != nil || top == "" {
		return "."
	}
	return filepath.Base(top)
}

// ConfigGet reads a config key at the given scope. A key that is simply
// not set returns ("", nil): absence is a normal read result, not an error.
func (c *Client) ConfigGet(key string, scope Scope) (string, error) {
	out, err := c.runner.Run(c.dir, "config", "--"+string(scope), "--get", key)
	if err != nil {
		if isMissingKey(err) {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// ConfigSet writes a config key at the given scope.
func (c *Client) ConfigSet(key, value string, scope Scope) error {
	_, err := c.runner.Run(c.dir, "config", "--"+string(scope), key, value)
	return err
}

// RemoteNames lists the configured remote names of the current repository.
func (c *Client) RemoteNames() ([]string, error) {
	out, err := c.runner.Run(c.dir, "remote")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// HasRemote reports whether a remote with the given name exists.
func (c *Client) HasRemote(name string) bool {
	names, err := c.RemoteNames()
	if err != nil {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// RemoteURL returns the URL of a named remote, or "" when the remote does
// not exist.
func (c *Client) RemoteURL(name string) (string, error) {
	out, err := c.runner.Run(c.dir, "remote", "get-url", name)
	if err != nil {
		if isMissingKey(err) {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// SetRemoteURL rewrites the URL of a named remote.
func (c *Client) SetRemoteURL(name, url string) error {
	_, err := c.runner.Run(c.dir, "remote", "set-url", name, url)
	return err
}

// isMissingKey detects the "key not set" / "no such remote" class of git
// failures, which exit non-zero but carry no real error condition for us.
// `git config --get` exits 1 for unset keys; `git remote get-url` reports
// unknown remotes on stderr.
func isMissingKey(err error) bool {
	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		return false
	}
	if strings.Contains(gitErr.Output, "No such remote") {
		return true
	}
	var coder interface{ ExitCode() int }
	if errors.As(gitErr.Err, &coder) {
		return coder.ExitCode() == 1 && gitErr.Output == ""
	}
	return false
}
