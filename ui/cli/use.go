// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/se7uh/git-id/internal/core"
	"github.com/se7uh/git-id/internal/gitcfg"
	"github.com/se7uh/git-id/internal/i18n"
	"github.com/se7uh/git-id/internal/style"
)

var useGlobal bool
var useSSH bool
var useHTTPS bool

// useCmd switches the repository (or the global config) to an account.
var useCmd = &cobra.Command{
	Use:   "use <account>",
	Short: "Switch to an account",
	Long: `Switch the current repository to an account: set user.name and
user.email, and rewrite the origin remote to match the account's
credentials. With --global the identity lands in the global git config
instead; the origin remote is still rewritten when one exists.

The remote transport is chosen automatically: ssh when the account's key
exists on disk, https when a token is configured. --ssh and --https
force one or the other.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, accounts, err := openRegistry()
		if err != nil {
			return err
		}
		acc, err := reg.Find(args[0])
		if err != nil {
			return err
		}

		scope := gitcfg.ScopeLocal
		if useGlobal {
			scope = gitcfg.ScopeGlobal
		}
		mode := core.ModeAuto
		switch {
		case useSSH:
			mode = core.ModeSSH
		case useHTTPS:
			mode = core.ModeHTTPS
		}

		resolver := &core.Resolver{
			Ctx:      appCtx,
			Git:      newGitClient(),
			Accounts: expandAccounts(accounts),
		}
		plan, err := resolver.Resolve(acc, scope, mode)
		if err != nil {
			return err
		}

		applier := &core.Applier{Git: resolver.Git, DryRun: dryRun, Out: cmd.OutOrStdout()}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), i18n.T("use.dry_run_header")+"\n", style.Account.Render(acc.ID()))
		}
		if err := applier.Apply(plan); err != nil {
			return err
		}
		if !dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), style.SuccessPrefix+" "+i18n.T("use.success")+"\n", style.Account.Render(acc.ID()))
		}
		return nil
	},
}

func applyUseFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("global") != nil {
		return
	}
	cmd.Flags().BoolVarP(&useGlobal, "global", "g", false, "Write the identity to the global git config")
	cmd.Flags().BoolVar(&useSSH, "ssh", false, "Force the ssh remote URL form")
	cmd.Flags().BoolVar(&useHTTPS, "https", false, "Force the https remote URL form")
	cmd.MarkFlagsMutuallyExclusive("ssh", "https")
}
