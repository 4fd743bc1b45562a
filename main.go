// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for git-id.
//
// Usage:
//
//	go run . [flags]
//	./git-id [flags]
//
// This launches the git-id CLI. See --help for options.
package main

import (
	"os"

	"github.com/se7uh/git-id/ui/cli"
)

// main is the entrypoint for the git-id CLI. Exit codes: 0 on success,
// 1 on operational errors, 2 on usage errors.
func main() {
	os.Exit(cli.Execute())
}
