package expand

import (
	"context"
	"errors"
	"strings"

	"github.com/sniperrifle2004/fish-shell/expand/internal/brace"
	"github.com/sniperrifle2004/fish-shell/expand/internal/cmdsubst"
	"github.com/sniperrifle2004/fish-shell/expand/internal/home"
	"github.com/sniperrifle2004/fish-shell/expand/internal/variable"
	"github.com/sniperrifle2004/fish-shell/expand/internal/wildcard"
	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// Status reports the outcome class of one expansion, mirroring the
// four-way result the pipeline's driver is required to produce (§7): a run
// that never touched the filesystem is OK; a run that delegated to the
// wildcard matcher reports a match if at least one candidate directory
// produced one, and a no-match otherwise.
type Status int

const (
	// StatusOK means every stage ran cleanly and no element produced a
	// wildcard match or no-match result.
	StatusOK Status = iota
	// StatusWildcardNoMatch means a wildcard was present somewhere in the
	// argument and nothing matched anywhere, but no error occurred.
	StatusWildcardNoMatch
	// StatusWildcardMatch means at least one wildcard matched at least one
	// path.
	StatusWildcardMatch
	// StatusError means a stage recorded a parse or cmdsubst error; the
	// returned completion list is empty.
	StatusError
)

// combine folds one element's status into the running accumulator: an
// error anywhere is final and wins outright; a match anywhere beats a
// no-match anywhere, which beats plain OK. This is what keeps a no-match on
// one element of an argument from hiding a match already found on another
// (§4.6's "no_match downgrades ok but doesn't overwrite wildcard_match").
func combine(acc, next Status) Status {
	if acc == StatusError || next == StatusError {
		return StatusError
	}
	if acc == StatusWildcardMatch || next == StatusWildcardMatch {
		return StatusWildcardMatch
	}
	if acc == StatusWildcardNoMatch || next == StatusWildcardNoMatch {
		return StatusWildcardNoMatch
	}
	return StatusOK
}

// ExpandString runs the full five-stage pipeline on a single raw argument
// and returns its outcome status, the completions produced, and every
// parse error recorded along the way. onMainThread gates $history lookups
// per the History collaborator's main-thread affinity requirement.
func ExpandString(ctx context.Context, raw string, flags Flags, collab Collaborators, onMainThread bool) (Status, []Completion, ErrorList) {
	var errs ErrorList

	if !flags.Has(ForCompletions) && noSentinelsNeeded(raw) {
		return StatusOK, []Completion{NewCompletion(raw)}, errs
	}

	afterCmdsubst, err := cmdsubst.Expand(ctx, raw, flags.Has(SkipCmdsubst), flags.Has(ForCompletions), collab.Cmdsubst, collab.Locate)
	if err != nil {
		recordStageError(&errs, err)
		return StatusError, nil, errs
	}

	var afterVariable []string
	for _, s := range afterCmdsubst {
		vs, verr := variable.Expand(s, flags.Has(SkipVariables), flags.Has(ForCompletions), varStoreAdapter{collab.Vars}, collab.Hist, onMainThread)
		if verr != nil {
			recordStageError(&errs, verr)
			return StatusError, nil, errs
		}
		afterVariable = append(afterVariable, vs...)
	}

	var afterBrace []string
	for _, s := range afterVariable {
		bs, berr := brace.Expand(s, flags.Has(ForCompletions))
		if berr != nil {
			recordStageError(&errs, berr)
			return StatusError, nil, errs
		}
		afterBrace = append(afterBrace, bs...)
	}

	afterHome := make([]string, len(afterBrace))
	for i, s := range afterBrace {
		if flags.Has(SkipHomeDirectories) {
			afterHome[i] = sentinel.Scrub(s, sentinel.HomeDir, sentinel.ProcessSelf)
			continue
		}
		afterHome[i] = home.Expand(s, homeStoreAdapter{collab.Vars}, collab.Users, collab.ProcessID)
	}

	wopts := wildcard.Options{
		ForCompletions:    flags.Has(ForCompletions),
		SkipWildcards:     flags.Has(SkipWildcards),
		ExecutablesOnly:   flags.Has(ExecutablesOnly),
		SpecialForCd:      flags.Has(SpecialForCd),
		SpecialForCommand: flags.Has(SpecialForCommand),
		WorkingDirs:       collab.WorkingDirs,
		Path:              collab.Path,
		CdPath:            collab.CdPath,
		Matcher:           wildcardMatcherAdapter{collab.Wildcards},
	}

	status := StatusOK
	var out []Completion

	for _, s := range afterHome {
		res, matches, werr := wildcard.Expand(ctx, s, wopts)
		if werr != nil {
			recordStageError(&errs, werr)
			return StatusError, nil, errs
		}

		switch res {
		case wildcard.ResultPassthrough:
			out = append(out, NewCompletion(sentinel.ScrubAll(matches[0].Value)))
			status = combine(status, StatusOK)
		case wildcard.ResultMatch:
			for _, m := range matches {
				c := NewCompletion(sentinel.ScrubAll(m.Value))
				if m.ReplacesToken {
					c = c.WithFlag(ReplacesToken)
				}
				out = append(out, c)
			}
			status = combine(status, StatusWildcardMatch)
		case wildcard.ResultNoMatch:
			status = combine(status, StatusWildcardNoMatch)
		case wildcard.ResultDropped:
			// This element contributed nothing; status is unaffected.
		}
	}

	if flags.Has(ForCompletions) && !flags.Has(SkipHomeDirectories) {
		out = unexpandTildes(out, collab)
	}

	return status, out, errs
}

// ExpandOne is the single-result variant of ExpandString (§4.1): it
// succeeds only if the pipeline produced exactly one completion and did
// not error, in which case ok is true and value holds that completion's
// string. Any other outcome (zero, two-or-more completions, or an error)
// reports ok false and an empty value. For an argument that is already
// clean and single-valued this is the identity: ExpandOne(s) == s.
func ExpandOne(ctx context.Context, raw string, flags Flags, collab Collaborators, onMainThread bool) (value string, ok bool, status Status, errs ErrorList) {
	status, comps, errs := ExpandString(ctx, raw, flags, collab, onMainThread)
	if status == StatusError || len(comps) != 1 {
		return "", false, status, errs
	}
	return comps[0].Value, true, status, errs
}

// commandAndArgsFlags is the fixed flag set §4.1 mandates for
// expand_to_command_and_args: "runs the pipeline with skip_cmdsubst |
// no_descriptions | skip_jobs". There is no caller-supplied flag
// parameter; SpecialForCommand is added on top for the first token only,
// since that token is specifically the command name being resolved
// against PATH (§4.6).
const commandAndArgsFlags = SkipCmdsubst | NoDescriptions | SkipJobs

// ExpandToCommandAndArgs expands an already-tokenized command line under
// the fixed flag set §4.1 requires (SkipCmdsubst|NoDescriptions|SkipJobs),
// with the first token additionally marked SpecialForCommand so a bare
// relative name resolves against PATH. Splitting raw input into tokens is
// a full tokenizer's job and out of scope here; callers that have only a
// single unsplit line must tokenize it first.
func ExpandToCommandAndArgs(ctx context.Context, tokens []string, collab Collaborators, onMainThread bool) (cmd string, args []string, status Status, errs ErrorList) {
	if len(tokens) == 0 {
		return "", nil, StatusOK, errs
	}

	cmdStatus, cmdCompletions, cmdErrs := ExpandString(ctx, tokens[0], commandAndArgsFlags|SpecialForCommand, collab, onMainThread)
	errs.Merge(cmdErrs)
	if cmdStatus == StatusError || len(cmdCompletions) == 0 {
		return "", nil, StatusError, errs
	}
	cmd = cmdCompletions[0].Value

	status = StatusOK
	for _, tok := range tokens[1:] {
		s, cs, e := ExpandString(ctx, tok, commandAndArgsFlags, collab, onMainThread)
		errs.Merge(e)
		if s == StatusError {
			return "", nil, StatusError, errs
		}
		status = combine(status, s)
		for _, c := range cs {
			args = append(args, c.Value)
		}
	}

	return cmd, args, status, errs
}

// unexpandTildes restores a leading `~` on completions that replace the
// whole token (REPLACES_TOKEN) and happen to equal, or sit under, $HOME,
// per §4.6's closing paragraph. Only the $HOME case is reversible here:
// UserDB resolves username to home directory, not the other way around, so
// a `~otheruser` completion can never be reconstructed from its expansion
// alone. Every rewritten completion gets DONT_ESCAPE_TILDES set, both
// because a display layer must not re-escape the `~` it just restored and
// because it makes a second un-expand pass a no-op via the guard below.
func unexpandTildes(cs []Completion, collab Collaborators) []Completion {
	if collab.Vars == nil {
		return cs
	}
	ev, ok := collab.Vars.Get("HOME")
	if !ok || ev.MissingOrEmpty() {
		return cs
	}
	homeDir := ev.AsString()
	if homeDir == "" || homeDir == "/" {
		return cs
	}

	out := make([]Completion, len(cs))
	for i, c := range cs {
		switch {
		case c.Has(DontEscapeTildes), !c.Has(ReplacesToken):
			out[i] = c
		case c.Value == homeDir:
			out[i] = c.With("~").WithFlag(DontEscapeTildes)
		case strings.HasPrefix(c.Value, homeDir+"/"):
			out[i] = c.With("~" + c.Value[len(homeDir):]).WithFlag(DontEscapeTildes)
		default:
			out[i] = c
		}
	}
	return out
}

// noSentinelsNeeded is the fast path of §4.1: an argument with none of the
// characters any stage cares about skips the whole pipeline and is
// returned as a single completion unchanged. It only applies outside
// completion mode: §4.6 still requires a clean completion-mode argument to
// be run through the wildcard/path matcher, which can turn even a
// sentinel-free string into zero, one, or many filesystem completions.
func noSentinelsNeeded(s string) bool {
	for i, r := range s {
		switch r {
		case '$', '~', '*', '?', '{', '}', '(', ')', '\\', ',', '"', '\'':
			return false
		}
		if i == 0 && r == '%' {
			return false
		}
	}
	return true
}

func recordStageError(errs *ErrorList, err error) {
	var cmdSyntax *cmdsubst.SyntaxError
	var cmdFail *cmdsubst.CmdsubstError
	var varSyntax *variable.SyntaxError

	switch {
	case errors.As(err, &cmdSyntax):
		errs.Append(CodeSyntax, cmdSyntax.Offset, 0, "%s", cmdSyntax.Msg)
	case errors.As(err, &cmdFail):
		errs.AppendCmdsubst(cmdFail.Offset, 0, "%s", cmdFail.Msg)
	case errors.As(err, &varSyntax):
		errs.Append(CodeSyntax, varSyntax.Offset, 0, "%s", varSyntax.Msg)
	case errors.Is(err, brace.ErrMismatched):
		errs.Append(CodeSyntax, UnknownOffset, 0, "mismatched braces")
	default:
		errs.Append(CodeSyntax, UnknownOffset, 0, "%s", err.Error())
	}
}
