// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for git-id using the Cobra
// library. It defines the root command, wires the shared services
// (settings, registry, git client) and maps errors to exit codes.

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/se7uh/git-id/buildvars"
	"github.com/se7uh/git-id/internal/agent"
	"github.com/se7uh/git-id/internal/config"
	"github.com/se7uh/git-id/internal/core"
	"github.com/se7uh/git-id/internal/gitcfg"
	"github.com/se7uh/git-id/internal/i18n"
	"github.com/se7uh/git-id/internal/logging"
	"github.com/se7uh/git-id/internal/model"
	"github.com/se7uh/git-id/internal/registry"
	"github.com/se7uh/git-id/internal/style"
)

func errorPrefix() string { return style.ErrorPrefix }

var cfgFile string
var dryRun bool
var verbose bool

// appSettings and appCtx are populated by PersistentPreRunE before any
// subcommand runs.
var appSettings config.Settings
var appCtx core.Context

// newGitClient and agentLister are replaceable seams so command tests
// can run against fakes instead of a real repository and agent.
var newGitClient = func() core.GitConfig { return gitcfg.NewClient("") }
var agentLister core.AgentLister = core.AgentListerFunc(agent.List)

// usageError marks errors that should exit with the usage code.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// setupServices loads settings and prepares the execution context. It
// runs once per invocation, before the subcommand.
func setupServices(cmd *cobra.Command, args []string) error {
	explicit := ""
	if cmd.Flags().Changed("config") {
		explicit = cfgFile
		if explicit != "" {
			if _, err := os.Stat(explicit); err != nil {
				return fmt.Errorf("config file from --config flag not accessible: %w", err)
			}
		}
	}

	var err error
	appSettings, err = config.Load(cmd, explicit)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logging.SetDebug(appSettings.Debug || verbose)
	i18n.Init(appSettings.Language)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}
	appCtx = core.Context{
		HomeDir: home,
		KeysDir: appSettings.SSHDir,
		Now:     time.Now(),
	}

	return nil
}

// openRegistry returns the account store and its current content.
func openRegistry() (*registry.Registry, []model.Account, error) {
	path := appSettings.AccountsFile
	if path == "" {
		p, err := registry.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	reg := registry.New(appCtx.ExpandHome(path))
	accounts, err := reg.Load()
	if err != nil {
		return nil, nil, err
	}
	return reg, accounts, nil
}

// tildeify rewrites a path under the context home to the ~/ form, which
// is how key paths are stored in accounts.toml.
func tildeify(path string) string {
	rel, err := filepath.Rel(appCtx.HomeDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return "~/" + filepath.ToSlash(rel)
}

// NewRootCmd creates and configures a new root cobra command. Tests call
// it per test case for isolation.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-id",
		Short: "Manage multiple git hosting identities",
		Long: `git-id keeps a registry of hosting accounts (username, email, ssh key,
https token) and switches a repository or the global git configuration
between them. Switching rewrites user.name, user.email and the origin
remote URL in one step; per-account ssh host aliases make several keys
coexist on one machine.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupServices,
	}
	cmd.Version = buildvars.VersionOrDefault("dev")

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	cmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Print what would change without changing it")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "", `output language ("en", "de")`)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err}
	})

	applyAddFlags(addCmd)
	applyUseFlags(useCmd)
	applyStatusFlags(statusCmd)
	applyRemoveFlags(removeCmd)
	applySSHFlags()

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(useCmd)
	cmd.AddCommand(statusCmd)
	cmd.AddCommand(removeCmd)
	cmd.AddCommand(sshCmd)

	return cmd
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 2 for user errors (bad flags, unknown or ambiguous accounts, conflicts,
// missing credentials), 1 for environment and IO failures.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorPrefix(), err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage usageError
	switch {
	case errors.As(err, &usage),
		strings.Contains(err.Error(), "unknown command"),
		errors.Is(err, registry.ErrNotFound),
		errors.Is(err, registry.ErrAmbiguous),
		errors.Is(err, registry.ErrConflict),
		errors.Is(err, core.ErrNoUsableCredential):
		return 2
	}
	return 1
}
