package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sniperrifle2004/fish-shell/expand"
	"github.com/sniperrifle2004/fish-shell/internal/collab"
)

var cmdlineCmd = &cobra.Command{
	Use:   "cmdline <command> [arg]...",
	Short: "Expand a pre-tokenized command line, resolving the command name against PATH",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCmdline,
}

func runCmdline(cmd *cobra.Command, tokens []string) error {
	cfg := configFromCLI()
	if err := cfg.Validate(); err != nil {
		return err
	}

	collaborators := collab.NewDefaultCollaborators(cfg.WorkingDir)

	name, args, status, errs := expand.ExpandToCommandAndArgs(context.Background(), tokens, collaborators, true)

	for _, pe := range errs.Errs() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", pe.Error())
	}

	if status == expand.StatusError {
		cmd.SilenceUsage = true
		return fmt.Errorf("cmdline expansion failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), name)
	for _, a := range args {
		fmt.Fprintln(cmd.OutOrStdout(), a)
	}
	return nil
}
