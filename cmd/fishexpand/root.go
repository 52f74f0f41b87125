package main

import (
	"github.com/spf13/cobra"

	"github.com/sniperrifle2004/fish-shell/expand"
	"github.com/sniperrifle2004/fish-shell/internal/log"
)

var (
	flagForCompletions    bool
	flagSkipCmdsubst      bool
	flagSkipVariables     bool
	flagSkipWildcards     bool
	flagSkipHomeDirs      bool
	flagExecutablesOnly   bool
	flagNoDescriptions    bool
	flagSpecialForCd      bool
	flagSpecialForCommand bool

	flagWorkingDir string
	flagLogPath    string
)

var rootCmd = &cobra.Command{
	Use:           "fishexpand",
	Short:         "Expand shell-style argument syntax outside of a shell",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagLogPath != "" {
			log.Reconfigure(flagLogPath)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagForCompletions, "for-completions", false, "run in completion mode (tolerate unclosed quotes/braces)")
	pf.BoolVar(&flagSkipCmdsubst, "skip-cmdsubst", false, "treat a command substitution as a cmdsubst error")
	pf.BoolVar(&flagSkipVariables, "skip-variables", false, "do not substitute $variables")
	pf.BoolVar(&flagSkipWildcards, "skip-wildcards", false, "do not expand wildcards")
	pf.BoolVar(&flagSkipHomeDirs, "skip-home-directories", false, "do not expand ~ or %self")
	pf.BoolVar(&flagExecutablesOnly, "executables-only", false, "never expand a wildcard used as a command name")
	pf.BoolVar(&flagNoDescriptions, "no-descriptions", false, "ask collaborators to skip computing descriptions")
	pf.BoolVar(&flagSpecialForCd, "for-cd", false, "resolve a bare relative path against CDPATH")
	pf.BoolVar(&flagSpecialForCommand, "for-command", false, "resolve a bare relative name against PATH")
	pf.StringVar(&flagWorkingDir, "cwd", "", "working directory to expand against (defaults to the process cwd)")
	pf.StringVar(&flagLogPath, "log", "", "write pipeline debug logs to this path instead of discarding them")

	rootCmd.AddCommand(expandCmd, cmdlineCmd)
}

func flagsFromCLI() expand.Flags {
	var f expand.Flags
	set := func(bit expand.Flags, on bool) {
		if on {
			f |= bit
		}
	}
	set(expand.ForCompletions, flagForCompletions)
	set(expand.SkipCmdsubst, flagSkipCmdsubst)
	set(expand.SkipVariables, flagSkipVariables)
	set(expand.SkipWildcards, flagSkipWildcards)
	set(expand.SkipHomeDirectories, flagSkipHomeDirs)
	set(expand.ExecutablesOnly, flagExecutablesOnly)
	set(expand.NoDescriptions, flagNoDescriptions)
	set(expand.SpecialForCd, flagSpecialForCd)
	set(expand.SpecialForCommand, flagSpecialForCommand)
	return f
}

func configFromCLI() Config {
	mode := "argument"
	if flagForCompletions {
		mode = "completion"
	}
	return Config{
		WorkingDir: flagWorkingDir,
		LogPath:    flagLogPath,
		Mode:       mode,
	}
}
