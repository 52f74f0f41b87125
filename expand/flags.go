package expand

// Flags is the bitset of options a caller passes into the driver. It
// mirrors §3 of the specification exactly; nothing here is renamed.
type Flags uint32

const (
	// ForCompletions runs the pipeline in completion mode: unclosed braces
	// are tolerated, wildcard expansion is always attempted, and the
	// tilde un-expander restores literal `~` prefixes in the result.
	ForCompletions Flags = 1 << iota
	// SkipCmdsubst disables the command-substitution stage; a `(...)`
	// region found while this flag is set is a cmdsubst error.
	SkipCmdsubst
	// SkipVariables disables the variable-substitution phase of the
	// variable stage; `$` sentinels are reverted to literal `$`.
	SkipVariables
	// SkipWildcards disables wildcard delegation; wildcard sentinels are
	// reverted to their literal characters.
	SkipWildcards
	// SkipHomeDirectories disables the home/percent-self stage and the
	// post-pipeline tilde un-expansion.
	SkipHomeDirectories
	// SkipJobs is accepted for parity with the host shell's flag set; the
	// expansion core has no job table of its own and never inspects it.
	SkipJobs
	// ExecutablesOnly marks the expansion as being performed to locate a
	// command name; historically, the wildcard stage never expands a
	// wildcard in this mode (see §4.6).
	ExecutablesOnly
	// NoDescriptions asks completions not to carry human-readable
	// descriptions; the core does not produce descriptions itself but
	// forwards the flag so collaborators can skip the work of computing
	// them.
	NoDescriptions
	// SpecialForCd marks the argument as the operand of `cd`: relative
	// paths without a leading path separator are resolved against CDPATH.
	SpecialForCd
	// SpecialForCommand marks the argument as a command name: relative
	// names with no path separator are resolved against PATH.
	SpecialForCommand
)

// Has reports whether all bits of want are set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}
