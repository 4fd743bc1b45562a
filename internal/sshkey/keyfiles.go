// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultKeyPath is where a generated key for username lands inside sshDir.
func DefaultKeyPath(sshDir, username string) string {
	return filepath.Join(sshDir, "id_ed25519_"+username)
}

// EnsureSSHDir creates sshDir with owner-only permissions when absent.
func EnsureSSHDir(sshDir string) error {
	if _, err := os.Stat(sshDir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", sshDir, err)
	}
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", sshDir, err)
	}
	return nil
}

// WriteKeyPair generates a fresh ed25519 key pair for username and writes
// it to DefaultKeyPath. The comment becomes the public key comment (we use
// the account email, same as ssh-keygen -C). It fails with ErrPathExists
// rather than overwrite either file of an occupied path.
func WriteKeyPair(sshDir, username, comment string) (privPath string, err error) {
	if err := EnsureSSHDir(sshDir); err != nil {
		return "", err
	}

	privPath = DefaultKeyPath(sshDir, username)
	pubPath := privPath + ".pub"
	for _, p := range []string{privPath, pubPath} {
		if _, err := os.Stat(p); err == nil {
			return "", fmt.Errorf("%w: %s", ErrPathExists, p)
		}
	}

	pub, priv, err := GenerateEd25519(comment)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(privPath, []byte(priv), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", privPath, err)
	}
	if err := os.WriteFile(pubPath, []byte(pub+"\n"), 0o644); err != nil {
		// Don't leave a private key without its public half.
		os.Remove(privPath)
		return "", fmt.Errorf("write %s: %w", pubPath, err)
	}
	return privPath, nil
}

// Pick validates an existing public key file for use by an account and
// returns the path of the private key alongside it. It fails with
// ErrKeyNotFound when the private half is missing.
func Pick(pubPath string) (privPath string, err error) {
	if _, err := os.Stat(pubPath); err != nil {
		return "", fmt.Errorf("public key %s: %w", pubPath, err)
	}
	privPath = strings.TrimSuffix(pubPath, ".pub")
	if _, err := os.Stat(privPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrKeyNotFound, privPath)
		}
		return "", fmt.Errorf("private key %s: %w", privPath, err)
	}
	if err := FixPermissions(privPath); err != nil {
		return "", err
	}
	return privPath, nil
}

// FixPermissions enforces the owner-only mode on a private key and the
// standard mode on its public half.
func FixPermissions(privPath string) error {
	if err := os.Chmod(privPath, 0o600); err != nil {
		return fmt.Errorf("chmod %s: %w", privPath, err)
	}
	pubPath := privPath + ".pub"
	if _, err := os.Stat(pubPath); err == nil {
		if err := os.Chmod(pubPath, 0o644); err != nil {
			return fmt.Errorf("chmod %s: %w", pubPath, err)
		}
	}
	return nil
}

// ListPublicKeys returns the sorted *.pub files directly under sshDir.
func ListPublicKeys(sshDir string) ([]string, error) {
	entries, err := os.ReadDir(sshDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", sshDir, err)
	}
	var pubs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pub") {
			continue
		}
		pubs = append(pubs, filepath.Join(sshDir, e.Name()))
	}
	sort.Strings(pubs)
	return pubs, nil
}

// DeleteKeyPair removes a private key and its .pub file, ignoring files
// that are already gone. Used by `remove --delete-keys`.
func DeleteKeyPair(privPath string) error {
	for _, p := range []string{privPath, privPath + ".pub"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}
