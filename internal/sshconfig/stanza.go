// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/se7uh/git-id/internal/model"
)

// StanzaBody renders the ssh config stanza for one account. The alias is
// the Host entry; connections through it always authenticate as the git
// user with exactly the account's key.
func StanzaBody(acc model.Account) string {
	return fmt.Sprintf(
		"Host %s\n    HostName %s\n    User git\n    IdentityFile %s\n    IdentitiesOnly yes\n",
		acc.Alias(), acc.EffectiveHost(), acc.SSHKey)
}

// Stanza renders the full owned block for an account, markers included.
// Used for preview output; Regenerate produces the same bytes.
func Stanza(acc model.Account) string {
	return renderBlock(acc.ID(), StanzaBody(acc))
}

// Regenerate returns the new content of an ssh config: every account with
// a key gets its owned block set, owned blocks for unknown accounts are
// dropped, foreign content rides along untouched. Running it twice with
// the same accounts yields identical bytes.
func Regenerate(current string, accounts []model.Account) string {
	f := Parse(current)

	keep := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		if acc.SSHKey == "" {
			continue
		}
		keep[acc.ID()] = true
		f.SetBlock(acc.ID(), StanzaBody(acc))
	}

	for _, id := range f.OwnedIDs() {
		if !keep[id] {
			f.RemoveBlock(id)
		}
	}

	return f.Render()
}

// UpdateFile rewrites the ssh config at path from the registered accounts,
// atomically and with owner-only permissions. The parent directory is
// created 0700 when missing.
func UpdateFile(path string, accounts []model.Account) error {
	current := ""
	if data, err := os.ReadFile(path); err == nil {
		current = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	next := Regenerate(current, accounts)
	if next == current {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write([]byte(next)); err != nil {
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
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
