// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/se7uh/git-id/internal/agent"
	"github.com/se7uh/git-id/internal/core"
	"github.com/se7uh/git-id/internal/i18n"
	"github.com/se7uh/git-id/internal/logging"
	"github.com/se7uh/git-id/internal/model"
	"github.com/se7uh/git-id/internal/registry"
	"github.com/se7uh/git-id/internal/sshconfig"
	"github.com/se7uh/git-id/internal/sshkey"
	"github.com/se7uh/git-id/internal/style"
)

var addEmail string
var addHost string
var addKeyPath string
var addToken string
var addGenerate bool

// addCmd registers a new hosting account.
var addCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Register a new account",
	Long: `Register a hosting account in the registry. An ssh key can be attached
from an existing file (--key), generated fresh (--generate), or left for
later ('git-id ssh gen'). A generated key is also offered to the running
ssh agent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc := model.Account{
			Username:   args[0],
			Email:      addEmail,
			Host:       addHost,
			HTTPSToken: addToken,
		}
		if err := acc.Validate(); err != nil {
			return err
		}

		reg, accounts, err := openRegistry()
		if err != nil {
			return err
		}
		for _, existing := range accounts {
			if existing.ID() == acc.ID() {
				return fmt.Errorf("%w: %s", registry.ErrConflict, acc.ID())
			}
		}

		if addKeyPath != "" {
			if _, err := os.Stat(appCtx.ExpandHome(addKeyPath)); err != nil {
				logging.Warnf("ssh key %s is not readable yet: %v", addKeyPath, err)
			}
			acc.SSHKey = tildeify(addKeyPath)
		}
		if addGenerate {
			privPath, err := sshkey.WriteKeyPair(appCtx.SSHDir(), acc.Username, acc.ID())
			if err != nil {
				return err
			}
			acc.SSHKey = tildeify(privPath)
			fmt.Fprintf(cmd.OutOrStdout(), i18n.T("add.key_generated")+"\n", privPath)
			printGeneratedKey(cmd, privPath)
			addKeyToAgent(cmd, privPath, acc.ID())
		}

		if err := reg.Add(acc); err != nil {
			return err
		}
		if acc.SSHKey != "" {
			accounts = append(accounts, acc)
			if err := sshconfig.UpdateFile(appCtx.SSHConfigPath(), expandAccounts(accounts)); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), style.SuccessPrefix+" "+i18n.T("add.success")+"\n", style.Account.Render(acc.ID()))
		return nil
	},
}

func applyAddFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("email") != nil {
		return
	}
	cmd.Flags().StringVarP(&addEmail, "email", "e", "", "Commit email for this account (required)")
	cmd.Flags().StringVar(&addHost, "host", "", `Hosting host (default "github.com")`)
	cmd.Flags().StringVarP(&addKeyPath, "ssh-key", "k", "", "Path to an existing ssh private key")
	cmd.Flags().StringVarP(&addToken, "https-token", "t", "", "HTTPS access token")
	cmd.Flags().BoolVarP(&addGenerate, "gen-key", "g", false, "Generate a fresh ed25519 key pair")
	_ = cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("ssh-key", "gen-key")
}

// printGeneratedKey shows the fingerprint and the public key line so it
// can be pasted into the forge's key settings.
func printGeneratedKey(cmd *cobra.Command, privPath string) {
	if fp, err := sshkey.FingerprintFile(privPath + ".pub"); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), i18n.T("ssh.gen.fingerprint")+"\n", fp)
	}
	if pub, err := os.ReadFile(privPath + ".pub"); err == nil {
		fmt.Fprint(cmd.OutOrStdout(), string(pub))
	}
}

// addKeyToAgent loads a private key into the running ssh agent. Failure
// is logged, never fatal: the key on disk is what matters.
func addKeyToAgent(cmd *cobra.Command, privPath, comment string) {
	pem, err := os.ReadFile(privPath)
	if err != nil {
		logging.Warnf("could not read %s for the agent: %v", privPath, err)
		return
	}
	if err := agent.Add(pem, comment); err != nil {
		logging.Debugf("ssh agent not updated: %v", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("add.key_agent"))
}

// expandAccounts resolves the tilde form of every key path so the ssh
// config gets absolute IdentityFile lines.
func expandAccounts(accounts []model.Account) []model.Account {
	out := make([]model.Account, len(accounts))
	for i, acc := range accounts {
		acc.SSHKey = appCtx.ExpandHome(acc.SSHKey)
		out[i] = acc
	}
	return out
}

// listCmd prints the registered accounts, tagging the active one.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, accounts, err := openRegistry()
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("list.empty"))
			return nil
		}

		ev := core.GatherEvidence(newGitClient(), nil)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ACCOUNT\tEMAIL\tALIAS\tSSH KEY\tTOKEN\t")
		for _, acc := range accounts {
			token := ""
			if acc.HTTPSToken != "" {
				token = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				acc.ID(), acc.Email, acc.Alias(), keyCell(acc), token, activeTag(acc, ev))
		}
		return w.Flush()
	},
}

// keyCell renders the account's key path, flagging a path whose private
// key file is gone from disk.
func keyCell(acc model.Account) string {
	if acc.SSHKey == "" {
		return ""
	}
	if _, err := os.Stat(appCtx.ExpandHome(acc.SSHKey)); err != nil {
		return acc.SSHKey + " " + style.Warning.Render("(missing)")
	}
	return acc.SSHKey
}

// activeTag marks the account the current git config points at.
func activeTag(acc model.Account, ev core.Evidence) string {
	if ev.InRepo && ev.LocalEmail == acc.Email {
		return style.ActiveTag.Render(i18n.T("list.active_local"))
	}
	if ev.GlobalEmail == acc.Email {
		return style.ActiveTag.Render(i18n.T("list.active_global"))
	}
	return ""
}

var removeYes bool
var removeDeleteKeys bool

// removeCmd deletes an account from the registry.
var removeCmd = &cobra.Command{
	Use:   "remove <account>",
	Short: "Remove an account",
	Long: `Remove an account from the registry and drop its managed ssh config
entry. Key files on disk stay unless --delete-keys is given. Existing
repositories keep whatever identity and remote URL they have; git-id
only stops managing them.`,
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

		if !removeYes {
			fmt.Fprintf(cmd.OutOrStdout(), i18n.T("remove.confirm"), style.Account.Render(acc.ID()))
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("remove.aborted"))
				return nil
			}
		}

		if _, err := reg.Remove(acc.Username, acc.EffectiveHost()); err != nil {
			return err
		}
		remaining, err := reg.Load()
		if err != nil {
			return err
		}
		if err := sshconfig.UpdateFile(appCtx.SSHConfigPath(), expandAccounts(remaining)); err != nil {
			return err
		}

		if removeDeleteKeys && acc.SSHKey != "" {
			priv := appCtx.ExpandHome(acc.SSHKey)
			if err := sshkey.DeleteKeyPair(priv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), i18n.T("remove.keys_deleted")+"\n", priv)
		}

		fmt.Fprintf(cmd.OutOrStdout(), style.SuccessPrefix+" "+i18n.T("remove.success")+"\n", style.Account.Render(acc.ID()))
		return nil
	},
}

func applyRemoveFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("yes") != nil {
		return
	}
	cmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&removeDeleteKeys, "delete-keys", false, "Also delete the account's key pair from disk")
}
