// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/se7uh/git-id/internal/i18n"
	"github.com/se7uh/git-id/internal/registry"
	"github.com/se7uh/git-id/internal/sshconfig"
	"github.com/se7uh/git-id/internal/sshkey"
	"github.com/se7uh/git-id/internal/style"
)

// refreshSSHConfig rewrites the managed blocks from the registry's
// current content.
func refreshSSHConfig(reg *registry.Registry) error {
	accounts, err := reg.Load()
	if err != nil {
		return err
	}
	return sshconfig.UpdateFile(appCtx.SSHConfigPath(), expandAccounts(accounts))
}

// readSSHConfig returns the current ssh config content, empty when the
// file does not exist yet.
func readSSHConfig() string {
	data, err := os.ReadFile(appCtx.SSHConfigPath())
	if err != nil {
		return ""
	}
	return string(data)
}

// sshCmd groups the key management subcommands.
var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Manage ssh keys and the ssh config",
}

// sshGenCmd generates a fresh key for an existing account.
var sshGenCmd = &cobra.Command{
	Use:   "gen <account>",
	Short: "Generate an ed25519 key pair for an account",
	Long: `Generate a passphrase-less ed25519 key pair for a registered account,
store its path in the registry and refresh the managed ssh config. The
new key is also offered to the running ssh agent. Existing key files are
never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, _, err := openRegistry()
		if err != nil {
			return err
		}
		acc, err := reg.Find(args[0])
		if err != nil {
			return err
		}

		privPath, err := sshkey.WriteKeyPair(appCtx.SSHDir(), acc.Username, acc.ID())
		if err != nil {
			return err
		}
		acc.SSHKey = tildeify(privPath)
		if err := reg.Update(acc); err != nil {
			return err
		}
		if err := refreshSSHConfig(reg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), style.SuccessPrefix+" "+i18n.T("ssh.gen.success")+"\n", privPath)
		printGeneratedKey(cmd, privPath)
		addKeyToAgent(cmd, privPath, acc.ID())
		return nil
	},
}

// sshPickCmd attaches an existing key to an account.
var sshPickCmd = &cobra.Command{
	Use:   "pick <account> <public-key>",
	Short: "Attach an existing key to an account",
	Long: `Attach an already existing key pair to a registered account by its
public key file. The private key's permissions are tightened to 0600 and
the managed ssh config is refreshed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, _, err := openRegistry()
		if err != nil {
			return err
		}
		acc, err := reg.Find(args[0])
		if err != nil {
			return err
		}

		privPath, err := sshkey.Pick(appCtx.ExpandHome(args[1]))
		if err != nil {
			return err
		}
		acc.SSHKey = tildeify(privPath)
		if err := reg.Update(acc); err != nil {
			return err
		}
		if err := refreshSSHConfig(reg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), style.SuccessPrefix+" "+i18n.T("ssh.pick.success")+"\n",
			style.Account.Render(acc.ID()), privPath)
		return nil
	},
}

// sshConfigCmd regenerates the managed ssh config blocks, or previews
// the stanza of one account.
var sshConfigCmd = &cobra.Command{
	Use:   "config [account]",
	Short: "Regenerate the managed ssh config entries",
	Long: `Regenerate every managed host entry in the ssh client config from the
registry. Content outside the managed markers is preserved byte for
byte. With an account argument the stanza is printed instead of written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, accounts, err := openRegistry()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			acc, err := reg.Find(args[0])
			if err != nil {
				return err
			}
			acc.SSHKey = appCtx.ExpandHome(acc.SSHKey)
			fmt.Fprintf(cmd.OutOrStdout(), i18n.T("ssh.config.preview")+"\n", acc.ID())
			fmt.Fprint(cmd.OutOrStdout(), sshconfig.Stanza(acc))
			return nil
		}

		if dryRun {
			next := sshconfig.Regenerate(readSSHConfig(), expandAccounts(accounts))
			fmt.Fprint(cmd.OutOrStdout(), next)
			return nil
		}
		if err := sshconfig.UpdateFile(appCtx.SSHConfigPath(), expandAccounts(accounts)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), style.SuccessPrefix+" "+i18n.T("ssh.config.updated")+"\n", appCtx.SSHConfigPath())
		return nil
	},
}

func applySSHFlags() {
	if len(sshCmd.Commands()) == 0 {
		sshCmd.AddCommand(sshGenCmd)
		sshCmd.AddCommand(sshPickCmd)
		sshCmd.AddCommand(sshConfigCmd)
	}
}
