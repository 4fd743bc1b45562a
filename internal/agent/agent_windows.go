//go:build windows
// +build windows

// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Windows-specific lookup of the running SSH agent.
package agent

import (
	"net"
	"os"

	"github.com/Microsoft/go-winio"
	"github.com/davidmz/go-pageant"
	xagent "golang.org/x/crypto/ssh/agent"
)

// getSSHAgent attempts to connect to a running SSH agent on Windows. It
// first tries Pageant-compatible agents (PuTTY, gpg-agent), then falls
// back to the OpenSSH agent named pipe, honoring SSH_AUTH_SOCK when set.
func getSSHAgent() xagent.Agent {
	if pageant.Available() {
		return pageant.New()
	}

	var conn net.Conn
	var err error
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		conn, err = winio.DialPipe(sock, nil)
	} else {
		conn, err = winio.DialPipe(`\\.\pipe\openssh-ssh-agent`, nil)
	}
	if err == nil && conn != nil {
		return xagent.NewClient(conn)
	}
	return nil
}
