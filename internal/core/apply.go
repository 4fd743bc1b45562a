// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/se7uh/git-id/internal/sshconfig"
)

// Applier executes a plan's effects in order. Execution is not
// transactional: a failure mid-plan leaves earlier effects in place, and
// the returned error says exactly how far it got.
type Applier struct {
	Git    GitConfig
	DryRun bool
	// Out receives one line per effect: the dry-run preview, or the
	// applied summary. Nil suppresses output.
	Out io.Writer
}

// ApplyError reports a plan that stopped partway through.
type ApplyError struct {
	// Index is the position of the failing effect within the plan.
	Index int
	// Applied is how many effects completed before the failure.
	Applied int
	Effect  Effect
	Err     error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("effect %d (%s) failed after %d applied: %v",
		e.Index+1, e.Effect.Describe(), e.Applied, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// Apply runs every effect of the plan in order. In dry-run mode nothing
// is touched and each effect is printed with a "would" prefix.
func (a *Applier) Apply(plan *Plan) error {
	for i, eff := range plan.Effects {
		if a.DryRun {
			a.printf("[dry-run] would %s", eff.Describe())
			continue
		}
		if err := eff.apply(a); err != nil {
			return &ApplyError{Index: i, Applied: i, Effect: eff, Err: err}
		}
		a.printf("%s", eff.Describe())
	}
	return nil
}

func (a *Applier) printf(format string, args ...any) {
	if a.Out == nil {
		return
	}
	fmt.Fprintf(a.Out, format+"\n", args...)
}

func (e WriteSSHConfigEffect) apply(a *Applier) error {
	return sshconfig.UpdateFile(e.Path, e.Accounts)
}

// redactURL hides an embedded https token so plan output and logs never
// leak it.
func redactURL(url string) string {
	rest, found := strings.CutPrefix(url, "https://")
	if !found {
		return url
	}
	if _, after, hasCreds := strings.Cut(rest, "@"); hasCreds {
		return "https://***@" + after
	}
	return url
}
