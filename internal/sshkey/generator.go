// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshkey provisions the key material behind git-id accounts:
// in-process ed25519 generation, association of existing key pairs, and
// fingerprinting for status output.
package sshkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// GenerateEd25519 creates a new ed25519 key pair and returns it as
// formatted strings: the public key in authorized_keys format (with the
// comment appended) and the private key as an OpenSSH PEM block.
// ed25519 is the only supported algorithm; keys carry no passphrase.
func GenerateEd25519(comment string) (publicKey string, privateKey string, err error) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}

	sshPubKey, err := ssh.NewPublicKey(pubKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to create SSH public key: %w", err)
	}
	pubLine := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPubKey)))
	if comment != "" {
		pubLine = fmt.Sprintf("%s %s", pubLine, comment)
	}

	pemBlock, err := ssh.MarshalPrivateKey(privKey, "")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal private key: %w", err)
	}

	return pubLine, string(pem.EncodeToMemory(pemBlock)), nil
}

// Fingerprint returns the SHA256 fingerprint of a public key given in
// authorized_keys format.
func Fingerprint(publicKey string) (string, error) {
	pk, _, _, _, err := ssh.ParseAuthorizedKey([]byte(publicKey))
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	return ssh.FingerprintSHA256(pk), nil
}

// FingerprintFile reads a .pub file and returns its SHA256 fingerprint.
func FingerprintFile(pubPath string) (string, error) {
	data, err := os.ReadFile(pubPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pubPath, err)
	}
	return Fingerprint(string(data))
}
