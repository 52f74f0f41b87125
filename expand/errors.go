package expand

import (
	"errors"
	"fmt"

	"github.com/sniperrifle2004/fish-shell/expand/internal/cmdsubst"
)

// Sentinel errors for collaborators to return. Adapted from the teacher's
// `internal/errors` block of plain `errors.New` values; the expansion core
// only needs the handful below. The driver turns any collaborator error
// into StatusError.
var (
	// ErrCancelled is returned by a collaborator (typically the wildcard
	// matcher) to signal cooperative cancellation of an in-flight call.
	ErrCancelled = errors.New("expansion cancelled")

	// ErrReadTooMuch is returned by a command-substitution executor whose
	// output exceeded the buffer the caller was willing to hold. It is the
	// same value the command-substitution stage checks for, which reports
	// it as a "too much data" cmdsubst error.
	ErrReadTooMuch = cmdsubst.ErrReadTooMuch

	// ErrOffMainThread describes a history lookup attempted off the
	// thread the history store requires. No collaborator interface
	// returns it: the variable stage treats a call made with onMainThread
	// false (or a nil History) as "$history absent", without an error.
	ErrOffMainThread = errors.New("expansion: history access requires main-thread affinity")
)

// Code classifies a ParseError the way §7 of the specification requires:
// syntax errors are malformed input, cmdsubst errors are runtime failures
// of the external executor. The two need to be distinguished because only
// cmdsubst errors are deduplicated by message text.
type Code uint8

const (
	// CodeSyntax covers malformed slices, unmatched braces or parens, and
	// empty variable names.
	CodeSyntax Code = iota
	// CodeCmdsubst covers command-substitution executor failures and
	// output overruns.
	CodeCmdsubst
)

func (c Code) String() string {
	switch c {
	case CodeSyntax:
		return "syntax"
	case CodeCmdsubst:
		return "cmdsubst"
	default:
		return "unknown"
	}
}

// UnknownOffset is used in place of a source offset the core could not
// determine, matching SOURCE_LOCATION_UNKNOWN from §6.
const UnknownOffset = -1

// ParseError is one record of the append-only error list described in §3
// and §7. It plays the role the teacher's `Error{Type, Message}` struct
// plays for its own parser, generalized with a source range.
type ParseError struct {
	// SourceStart is the byte offset into the original input where the
	// error was detected, or UnknownOffset.
	SourceStart int
	// SourceLength is the number of bytes the error spans, or 0.
	SourceLength int
	Code         Code
	Text         string
}

func (e ParseError) Error() string {
	if e.SourceStart == UnknownOffset {
		return fmt.Sprintf("%s: %s", e.Code, e.Text)
	}
	return fmt.Sprintf("%s: %s (at offset %d)", e.Code, e.Text, e.SourceStart)
}

// ErrorList is the append-only error sink of §6/§7. Its zero value is
// ready to use. It is intentionally a value type: stages report failures
// as Go errors, and the driver collects them into a list it returns by
// value alongside the result rather than sharing it as mutable state,
// per §9's design note on the error list.
type ErrorList struct {
	errs []ParseError
}

// Append adds an error of the given code at the given offset, without
// deduplication.
func (l *ErrorList) Append(code Code, start, length int, format string, args ...any) {
	l.errs = append(l.errs, ParseError{
		SourceStart:  start,
		SourceLength: length,
		Code:         code,
		Text:         fmt.Sprintf(format, args...),
	})
}

// AppendCmdsubst adds a cmdsubst-class error, deduplicating by message text
// as required by §7.
func (l *ErrorList) AppendCmdsubst(start, length int, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	for _, e := range l.errs {
		if e.Code == CodeCmdsubst && e.Text == text {
			return
		}
	}
	l.errs = append(l.errs, ParseError{
		SourceStart:  start,
		SourceLength: length,
		Code:         CodeCmdsubst,
		Text:         text,
	})
}

// Errs returns the accumulated errors in the order they were appended.
func (l *ErrorList) Errs() []ParseError {
	return l.errs
}

// Empty reports whether no error has been recorded.
func (l *ErrorList) Empty() bool {
	return len(l.errs) == 0
}

// Merge appends every record of other onto l, preserving dedup rules for
// cmdsubst-class errors.
func (l *ErrorList) Merge(other ErrorList) {
	for _, e := range other.errs {
		if e.Code == CodeCmdsubst {
			l.AppendCmdsubst(e.SourceStart, e.SourceLength, "%s", e.Text)
			continue
		}
		l.errs = append(l.errs, e)
	}
}
