// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/se7uh/git-id/internal/core"
	"github.com/se7uh/git-id/internal/i18n"
	"github.com/se7uh/git-id/internal/model"
	"github.com/se7uh/git-id/internal/style"
)

var statusAgent bool

// statusCmd reports which account the current state points at. It reads
// git config, the origin remote and the ssh agent, and never fails just
// because the state matches nothing.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, accounts, err := openRegistry()
		if err != nil {
			return err
		}

		ev := core.GatherEvidence(newGitClient(), agentLister)
		out := cmd.OutOrStdout()

		if ev.InRepo {
			fmt.Fprintf(out, i18n.T("status.repo")+"\n", ev.RepoName)
		} else {
			fmt.Fprintln(out, style.Dim.Render(i18n.T("status.no_repo")))
		}
		if name, email := ev.EffectiveName(), ev.EffectiveEmail(); name != "" || email != "" {
			fmt.Fprintf(out, i18n.T("status.identity")+"\n", name, email)
		} else {
			fmt.Fprintln(out, i18n.T("status.identity_none"))
		}
		if ev.OriginURL != "" {
			fmt.Fprintf(out, i18n.T("status.origin")+"\n", ev.OriginURL)
		}

		res := core.Match(accounts, ev)
		switch res.State {
		case core.Matched:
			fmt.Fprintf(out, style.SuccessPrefix+" "+i18n.T("status.matched")+"\n",
				style.Account.Render(res.Account.ID()), res.Via)
			if res.Mismatch {
				msg := "status.mismatch"
				if res.Via == "email" {
					msg = "status.mismatch_remote"
				}
				fmt.Fprintf(out, style.WarningPrefix+" "+i18n.T(msg)+"\n", res.Account.ID())
			}
		case core.Ambiguous:
			ids := make([]string, len(res.Candidates))
			for i, c := range res.Candidates {
				ids[i] = c.ID()
			}
			fmt.Fprintf(out, style.WarningPrefix+" "+i18n.T("status.ambiguous")+"\n", strings.Join(ids, ", "))
		default:
			fmt.Fprintln(out, style.Dim.Render(i18n.T("status.unmatched")))
		}

		printAgentKeys(cmd, accounts, ev)
		return nil
	},
}

// printAgentKeys lists loaded agent keys, naming the owning account when
// a registered key's fingerprint matches.
func printAgentKeys(cmd *cobra.Command, accounts []model.Account, ev core.Evidence) {
	out := cmd.OutOrStdout()
	if len(ev.AgentKeys) == 0 {
		fmt.Fprintln(out, style.Dim.Render(i18n.T("status.agent_none")))
		return
	}
	owners := core.KeyOwners(appCtx, accounts)
	fmt.Fprintln(out, i18n.T("status.agent_header"))
	for _, key := range ev.AgentKeys {
		line := fmt.Sprintf("  %s %s", key.Fingerprint, key.Comment)
		if id, ok := owners[key.Fingerprint]; ok {
			line += " " + style.Account.Render("("+id+")")
		}
		fmt.Fprintln(out, line)
	}
}

func applyStatusFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("agent") != nil {
		return
	}
	// Agent keys are always listed now; the flag stays accepted so old
	// invocations keep working.
	cmd.Flags().BoolVar(&statusAgent, "agent", false, "List ssh agent keys (always on)")
	_ = cmd.Flags().MarkHidden("agent")
}
