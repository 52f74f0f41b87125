// Package cmdsubst implements the command-substitution stage (§4.2): it
// locates the first top-level `(...)` region, evaluates it through the
// external executor, applies an optional slice, and produces the
// cartesian product of every returned line with the already-expanded
// tail of the argument.
package cmdsubst

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sniperrifle2004/fish-shell/expand/internal/slicing"
	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// Executor mirrors expand.CmdsubstExecutor.
type Executor interface {
	Exec(ctx context.Context, source string, applyExitStatus bool) ([]string, error)
}

// Locator mirrors expand.Locator, restricted to the one method this
// package needs.
type Locator interface {
	LocateCmdsubst(s string, from int, acceptIncomplete bool) (begin, end, found int)
}

// ErrReadTooMuch is surfaced by an Executor whose output exceeded the
// buffer the caller was willing to hold.
var ErrReadTooMuch = errors.New("command substitution read too much data")

// SyntaxError reports a mismatched parenthesis.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string { return e.Msg }

// CmdsubstError reports a runtime failure of the executor.
type CmdsubstError struct {
	Offset int
	Msg    string
}

func (e *CmdsubstError) Error() string { return e.Msg }

// defaultLocator is used when the caller supplies no Locator collaborator.
type defaultLocator struct{}

func (defaultLocator) LocateCmdsubst(s string, from int, acceptIncomplete bool) (int, int, int) {
	return Locate(s, from, acceptIncomplete)
}

// Expand runs the full stage on one completion value. skip corresponds to
// SkipCmdsubst: a region found while true is a syntax^Wcmdsubst error
// (§4.2 "record a cmdsubst error and return error"); otherwise absence of
// a region passes s through unchanged.
func Expand(ctx context.Context, s string, skip, forCompletions bool, exec Executor, loc Locator) ([]string, error) {
	if loc == nil {
		loc = defaultLocator{}
	}

	begin, end, found := loc.LocateCmdsubst(s, 0, forCompletions)

	switch found {
	case 0:
		return []string{s}, nil
	case -1:
		return nil, &SyntaxError{Offset: begin, Msg: "mismatched parenthesis"}
	}

	if skip {
		return nil, &CmdsubstError{Offset: begin, Msg: "command substitution not supported here"}
	}

	if exec == nil {
		return nil, &CmdsubstError{Offset: begin, Msg: "no command substitution executor available"}
	}

	runes := []rune(s)
	prefix := string(runes[:begin])
	inner := string(runes[begin+1 : end])

	after := end + 1 // byte-safe because ')' is ASCII and `end` came from Locate's rune index
	var afterRunes []rune
	if after <= len(runes) {
		afterRunes = runes[after:]
	}

	lines, err := exec.Exec(ctx, inner, true)
	if err != nil {
		if errors.Is(err, ErrReadTooMuch) {
			return nil, &CmdsubstError{Offset: begin, Msg: "too much data output by command substitution"}
		}
		return nil, &CmdsubstError{Offset: begin, Msg: fmt.Sprintf("error while expanding command substitution: %s", err)}
	}

	remainder := string(afterRunes)
	sliceStart := 0
	if len(afterRunes) > 0 && afterRunes[0] == '[' {
		res, serr := slicing.Parse(remainder, 0, len(lines), func(r rune) bool { return r == sentinel.InternalSep })
		if serr != nil {
			var slErr *slicing.Error
			if e, ok := serr.(*slicing.Error); ok {
				slErr = e
			}
			off := begin
			if slErr != nil {
				off = after + slErr.Offset
			}
			return nil, &SyntaxError{Offset: off, Msg: serr.Error()}
		}
		lines = selectLines(lines, res.Indices)
		sliceStart = res.End
	}

	tail := remainder[sliceStart:]
	tailExpansions, err := expandRemainder(ctx, tail, skip, forCompletions, exec, loc)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(lines)*len(tailExpansions))
	for _, line := range lines {
		escaped := escapeLine(line)
		for _, tailVal := range tailExpansions {
			out = append(out, prefix+string(sentinel.InternalSep)+escaped+string(sentinel.InternalSep)+tailVal)
		}
	}

	return out, nil
}

// expandRemainder recursively expands any further command substitution in
// the tail that followed the one just processed.
func expandRemainder(ctx context.Context, tail string, skip, forCompletions bool, exec Executor, loc Locator) ([]string, error) {
	if tail == "" {
		return []string{""}, nil
	}
	return Expand(ctx, tail, skip, forCompletions, exec, loc)
}

func selectLines(lines []string, indices []int) []string {
	if indices == nil {
		return lines
	}
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(lines) {
			continue
		}
		out = append(out, lines[idx-1])
	}
	return out
}

// escapeLine applies the simple single-character backslash escape of
// §4.2: every backslash and every sentinel-producing character the
// unescape stage would otherwise reinterpret is escaped, so command
// substitution output round-trips through the subsequent unescape stage
// as opaque literal text.
func escapeLine(line string) string {
	var b strings.Builder
	for _, r := range line {
		switch r {
		case '\\', '$', '~', '%', '*', '?', '{', '}', ',', '"', '\'':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
