// Package brace implements the brace-expansion stage (§4.4 of the
// specification): it finds the first top-level `{a,b,c}` group, splits it
// on its top-level commas, and recurses on every alternative so nested
// groups expand too.
package brace

import (
	"errors"

	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// ErrMismatched is returned when a `{` has no matching `}` and the caller
// is not completing (so synthesizing a close would hide real input from
// the user).
var ErrMismatched = errors.New("mismatched braces")

// Expand runs the stage on one string. forCompletions mirrors
// ForCompletions: an unclosed brace is tolerated by synthesizing a
// closing brace and retrying, rather than reported as a syntax error.
//
// Per §9's open question about this exact behavior ("this code looks
// very fishy, apparently it has never worked"), this implementation
// takes option (b): it propagates the caller's original completion mode
// on retry rather than silently forcing SkipCmdsubst, since by this point
// in the pipeline command substitution has already run and there is
// nothing left to skip — see DESIGN.md.
func Expand(s string, forCompletions bool) ([]string, error) {
	begin, sep, end, ok := locateTopLevel(s)
	if !ok {
		// No top-level brace pair: nothing to do. Any stray brace
		// sentinel left over from unescape (e.g. an unmatched `}`) did
		// not come from a real pair and must be reverted to plain text
		// here, since no later stage knows about brace sentinels.
		return []string{scrubStray(s)}, nil
	}

	if end < 0 {
		if forCompletions {
			synthesized := synthesizeClose(s, begin, sep)
			return Expand(synthesized, forCompletions)
		}
		return nil, ErrMismatched
	}

	runes := []rune(s)
	prefix := string(runes[:begin])
	suffix := string(runes[end+1:])
	body := runes[begin+1 : end]

	items := splitTopLevel(body)

	var out []string
	for _, item := range items {
		trimmed := trimBraceSpace(item)
		candidate := prefix + string(trimmed) + suffix
		expanded, err := Expand(candidate, forCompletions)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}

	return out, nil
}

// locateTopLevel finds the first top-level BraceBegin, the index of the
// last BraceSep directly inside that group (reported only for incomplete
// input), and the matching BraceEnd, skipping
// nested pairs. end is -1 if no matching close exists. ok is false if
// there is no BraceBegin at all.
func locateTopLevel(s string) (begin, lastSep, end int, ok bool) {
	runes := []rune(s)
	begin, lastSep, end = -1, -1, -1

	depth := 0
	for i, r := range runes {
		switch r {
		case sentinel.BraceBegin:
			if depth == 0 {
				begin = i
			}
			depth++
		case sentinel.BraceEnd:
			if depth > 0 {
				depth--
				if depth == 0 {
					end = i
					return begin, lastSep, end, true
				}
			}
		case sentinel.BraceSep:
			if depth == 1 {
				lastSep = i
			}
		}
	}

	if begin >= 0 {
		return begin, lastSep, -1, true
	}

	return -1, -1, -1, false
}

// splitTopLevel splits body on BraceSep at depth 0 only.
func splitTopLevel(body []rune) [][]rune {
	var items [][]rune
	depth := 0
	start := 0

	for i, r := range body {
		switch r {
		case sentinel.BraceBegin:
			depth++
		case sentinel.BraceEnd:
			depth--
		case sentinel.BraceSep:
			if depth == 0 {
				items = append(items, body[start:i])
				start = i + 1
			}
		}
	}
	items = append(items, body[start:])

	return items
}

func trimBraceSpace(item []rune) []rune {
	start, end := 0, len(item)
	for start < end && item[start] == sentinel.BraceSpace {
		start++
	}
	for end > start && item[end-1] == sentinel.BraceSpace {
		end--
	}
	trimmed := make([]rune, 0, end-start)
	for _, r := range item[start:end] {
		if r == sentinel.BraceSpace {
			trimmed = append(trimmed, ' ')
			continue
		}
		trimmed = append(trimmed, r)
	}
	return trimmed
}

// synthesizeClose appends a BraceEnd sentinel at the end of the string,
// so that `{a,b` completes as if the user had typed `{a,b}`. begin and
// lastSep do not affect where the close goes.
func synthesizeClose(s string, begin, lastSep int) string {
	runes := []rune(s)
	at := len(runes)
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:at]...)
	out = append(out, sentinel.BraceEnd)
	out = append(out, runes[at:]...)
	return string(out)
}

func scrubStray(s string) string {
	return sentinel.Scrub(s, sentinel.BraceBegin, sentinel.BraceEnd, sentinel.BraceSep, sentinel.BraceSpace)
}
