// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package registry persists the account records of git-id. The store is a
// single TOML file with one [[accounts]] table per account; it is the sole
// durable owner of account data and is rewritten in full on every mutation.
package registry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/se7uh/git-id/internal/model"
)

// fileHeader is written at the top of the accounts file on every save.
// The file is meant to remain hand-editable.
const fileHeader = `# git-id accounts - managed by git-id (safe to edit manually)
# Add a new [[accounts]] section to register another identity.

`

// accountsFile mirrors the on-disk TOML document.
type accountsFile struct {
	Accounts []model.Account `toml:"accounts"`
}

// Registry reads and writes the accounts file at a fixed path.
type Registry struct {
	path string
}

// New returns a Registry backed by the given file path.
func New(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the backing file path.
func (r *Registry) Path() string { return r.path }

// DefaultPath returns the standard accounts file location,
// <user config dir>/git-id/accounts.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(dir, "git-id", "accounts.toml"), nil
}

// Load reads all accounts. A missing file is an empty registry, not an
// error. Unparsable content, invalid records and duplicate (username, host)
// pairs all surface as ErrCorruptStore so a damaged file never half-loads.
func (r *Registry) Load() ([]model.Account, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var f accountsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, r.path, err)
	}

	seen := make(map[string]bool, len(f.Accounts))
	for _, acc := range f.Accounts {
		if err := acc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, r.path, err)
		}
		id := acc.ID()
		if seen[id] {
			return nil, fmt.Errorf("%w: %s: duplicate account %s", ErrCorruptStore, r.path, id)
		}
		seen[id] = true
	}
	return f.Accounts, nil
}

// Save rewrites the whole store atomically: the new content is written to
// a temporary file in the same directory and renamed over the old one, so
// a crash never leaves a truncated accounts file.
func (r *Registry) Save(accounts []model.Account) error {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(accountsFile{Accounts: accounts}); err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".accounts-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

// EnsureFile creates an empty accounts file with the explanatory header if
// none exists yet.
func (r *Registry) EnsureFile() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}
	return r.Save(nil)
}

// Add validates and appends a new account. It fails with ErrConflict when
// the (username, host) pair is already registered.
func (r *Registry) Add(acc model.Account) error {
	if err := acc.Validate(); err != nil {
		return err
	}
	accounts, err := r.Load()
	if err != nil {
		return err
	}
	for _, existing := range accounts {
		if existing.ID() == acc.ID() {
			return fmt.Errorf("%w: %s", ErrConflict, acc.ID())
		}
	}
	return r.Save(append(accounts, acc))
}

// Update replaces the stored record matching acc's (username, host).
// It fails with ErrNotFound when no such account exists.
func (r *Registry) Update(acc model.Account) error {
	accounts, err := r.Load()
	if err != nil {
		return err
	}
	for i, existing := range accounts {
		if existing.ID() == acc.ID() {
			accounts[i] = acc
			return r.Save(accounts)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, acc.ID())
}

// Remove deletes the account with the given (username, host) and returns
// the removed record so the caller can decide what to do with its key
// files. Key deletion is caller policy, never automatic.
func (r *Registry) Remove(username, host string) (model.Account, error) {
	accounts, err := r.Load()
	if err != nil {
		return model.Account{}, err
	}
	id := model.Account{Username: username, Host: host}.ID()
	for i, acc := range accounts {
		if acc.ID() == id {
			remaining := append(accounts[:i:i], accounts[i+1:]...)
			if err := r.Save(remaining); err != nil {
				return model.Account{}, err
			}
			return acc, nil
		}
	}
	return model.Account{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Find resolves a selector to a single account. The selector is either
// "username" or "username@host". A bare username that exists on several
// hosts fails with ErrAmbiguous naming the candidates.
func (r *Registry) Find(selector string) (model.Account, error) {
	accounts, err := r.Load()
	if err != nil {
		return model.Account{}, err
	}

	if username, host, found := strings.Cut(selector, "@"); found {
		id := model.Account{Username: username, Host: host}.ID()
		for _, acc := range accounts {
			if acc.ID() == id {
				return acc, nil
			}
		}
		return model.Account{}, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}

	var matches []model.Account
	for _, acc := range accounts {
		if acc.Username == selector {
			matches = append(matches, acc)
		}
	}
	switch len(matches) {
	case 0:
		return model.Account{}, fmt.Errorf("%w: %s", ErrNotFound, selector)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID()
		}
		return model.Account{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, selector, strings.Join(ids, ", "))
	}
}
