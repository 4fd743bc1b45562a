//go:build !windows
// +build !windows

// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Unix-specific lookup of the running SSH agent.
package agent

import (
	"net"
	"os"

	xagent "golang.org/x/crypto/ssh/agent"
)

// getSSHAgent attempts to connect to a running SSH agent on Unix-like
// systems. It checks the SSH_AUTH_SOCK environment variable for the socket
// path and returns an agent client if a connection succeeds.
func getSSHAgent() xagent.Agent {
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			return xagent.NewClient(conn)
		}
	}
	return nil
}
