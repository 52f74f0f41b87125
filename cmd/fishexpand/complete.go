package main

import (
	"github.com/rsteube/carapace"
)

// init wires fishexpand's own shell completions, the way the teacher's
// generated commands register completions via carapace.Gen, here done by
// hand against plain cobra.Command values instead of through the struct-tag
// generator.
func init() {
	carapace.Gen(rootCmd).Standalone()

	carapace.Gen(expandCmd).PositionalAnyCompletion(
		carapace.ActionFiles(),
	)

	carapace.Gen(cmdlineCmd).PositionalCompletion(
		carapace.ActionFiles(),
	)
	carapace.Gen(cmdlineCmd).PositionalAnyCompletion(
		carapace.ActionFiles(),
	)
}
