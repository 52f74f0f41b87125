package main

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/sniperrifle2004/fish-shell/expand"
	"github.com/sniperrifle2004/fish-shell/internal/closest"
	"github.com/sniperrifle2004/fish-shell/internal/collab"
)

var expandCmd = &cobra.Command{
	Use:   "expand <argument>...",
	Short: "Run one or more arguments through the five-stage expansion pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExpand,
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg := configFromCLI()
	if err := cfg.Validate(); err != nil {
		return err
	}

	collaborators := collab.NewDefaultCollaborators(cfg.WorkingDir)
	flags := flagsFromCLI()
	ctx := context.Background()

	exitStatus := 0
	for _, raw := range args {
		status, completions, errs := expand.ExpandString(ctx, raw, flags, collaborators, true)

		for _, pe := range errs.Errs() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", raw, pe.Error())
		}
		suggestUnsetVariables(cmd, raw, collaborators.Vars.Names())

		if status == expand.StatusError {
			exitStatus = 1
			continue
		}
		if status == expand.StatusWildcardNoMatch {
			exitStatus = 1
		}

		for _, c := range completions {
			fmt.Fprintln(cmd.OutOrStdout(), c.Value)
		}
	}

	if exitStatus != 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("expansion did not complete cleanly")
	}
	return nil
}

var bareVariableRef = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// suggestUnsetVariables scans raw for `$NAME` references that name no
// variable known to the store and, when a close match exists, prints a
// "did you mean" hint the way the teacher's closest-choice helper does for
// mistyped flag names. An unset variable is not a pipeline error (§4.3
// silently drops it), so this is purely a CLI-side diagnostic.
func suggestUnsetVariables(cmd *cobra.Command, raw string, known []string) {
	if len(known) == 0 {
		return
	}

	for _, m := range bareVariableRef.FindAllStringSubmatch(raw, -1) {
		name := m[1]
		if containsName(known, name) {
			continue
		}

		best, dist := closest.Choice(name, known)
		if best == "" || dist > 2 {
			continue
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "note: $%s is unset; did you mean $%s?\n", name, best)
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
