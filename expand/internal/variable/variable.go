// Package variable implements the unescape-and-substitute stage of the
// expansion pipeline (§4.3): it turns user escape/quote syntax into the
// sentinel alphabet, then resolves `$NAME[...]` references against the
// variable store and history collaborators, scanning right-to-left as
// specified.
package variable

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sniperrifle2004/fish-shell/expand/internal/slicing"
	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// EnvVar mirrors expand.EnvVar; declared locally so this package does not
// import the root package (which imports this one), avoiding a cycle.
type EnvVar interface {
	AsList() []string
	AsString() string
	Delimiter() rune
	MissingOrEmpty() bool
}

// Store mirrors expand.VariableStore.
type Store interface {
	Get(name string) (EnvVar, bool)
}

// History mirrors expand.History.
type History interface {
	Size() int
	Items() []string
	ItemsAtIndexes(idx []int) map[int]string
}

// SyntaxError reports a malformed variable reference, at an offset
// relative to the start of the string handed to Expand. The pipeline does
// not carry a mapping back to the original input across every stage, so
// offsets are stage-relative rather than source-absolute beyond the
// first, unshifted reference in an argument.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string { return e.Msg }

// ValidNameChar reports whether r can appear in a variable name; it plays
// the role of valid_var_name_char from §6.
func ValidNameChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Expand runs the full unescape-then-substitute phase on a raw completion
// value and returns the resulting list of plain strings (sentinels other
// than the variable ones and INTERNAL_SEP are left untouched for later
// stages). skipVars
// corresponds to the SkipVariables flag: both sentinels are reverted to
// literal `$` without attempting substitution.
func Expand(raw string, skipVars, incomplete bool, store Store, hist History, onMainThread bool) ([]string, error) {
	unescaped, err := Unescape(raw, incomplete)
	if err != nil {
		return nil, err
	}

	if skipVars {
		return []string{ReescapeDollar(unescaped)}, nil
	}

	results, err := substitute(unescaped, store, hist, onMainThread)
	if err != nil {
		return nil, err
	}

	for i, r := range results {
		results[i] = sentinel.Scrub(r, sentinel.VarExpandEmpty, sentinel.InternalSep)
	}

	return results, nil
}

// substitute finds the rightmost unprocessed variable sentinel in s,
// resolves it, and recurses depth-first (in order) on every string that
// resolution produces. Once no sentinel remains the string is returned
// unchanged. This is the loop-equivalent §9 describes for "find last
// marker, reduce, recurse on remainder": plain recursion here rather than
// an explicit stack, since expansion depth is bounded by the number of
// `$` references in one argument, never by input length.
func substitute(s string, store Store, hist History, onMainThread bool) ([]string, error) {
	idx, quoted, ok := lastVarSentinel(s)
	if !ok {
		return []string{s}, nil
	}

	children, err := expandOnce(s, idx, quoted, store, hist, onMainThread)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, child := range children {
		sub, err := substitute(child, store, hist, onMainThread)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}

	return out, nil
}

func lastVarSentinel(s string) (idx int, quoted bool, ok bool) {
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case sentinel.VarExpand:
			return i, false, true
		case sentinel.VarExpandSingle:
			return i, true, true
		}
	}
	return 0, false, false
}

// expandOnce implements steps 1-7 of §4.3 for the variable occurrence at
// rune index dollarIdx of s.
func expandOnce(s string, dollarIdx int, quoted bool, store Store, hist History, onMainThread bool) ([]string, error) {
	runes := []rune(s)
	prefix := string(runes[:dollarIdx])

	j := dollarIdx + 1
	nameStart := j
	for j < len(runes) && runes[j] != sentinel.VarExpandEmpty && ValidNameChar(runes[j]) {
		j++
	}
	name := string(runes[nameStart:j])

	if name == "" {
		return nil, &SyntaxError{Offset: dollarIdx, Msg: "$ followed by nothing that could be a variable name"}
	}

	// Consume a placeholder empty-name terminator if present immediately
	// after the name run (see sentinel.VarExpandEmpty's doc comment).
	if j < len(runes) && runes[j] == sentinel.VarExpandEmpty {
		j++
	}

	isHistory := name == "history"

	var values []string
	var delimiter rune = ' '
	var missing bool

	switch {
	case isHistory:
		if hist == nil || !onMainThread {
			missing = true
		} else {
			values = hist.Items()
			delimiter = ' '
		}
	default:
		ev, found := store.Get(name)
		if !found || ev.MissingOrEmpty() {
			missing = true
		} else {
			values = ev.AsList()
			delimiter = ev.Delimiter()
		}
	}

	effectiveLen := len(values)
	if missing {
		effectiveLen = 1 // so `$unset[1]` is syntactically valid
	}

	sliceStart := j
	var indices []int
	if j < len(runes) && runes[j] == '[' {
		sliceStr := string(runes[sliceStart:])
		res, err := slicing.Parse(sliceStr, 0, effectiveLen, func(r rune) bool { return r == sentinel.InternalSep || r == sentinel.BraceSpace })
		if err != nil {
			var slErr *slicing.Error
			if ok := asSliceError(err, &slErr); ok {
				return nil, &SyntaxError{Offset: sliceStart + slErr.Offset, Msg: slErr.Msg}
			}
			return nil, err
		}
		indices = res.Indices
		j = sliceStart + utf8.RuneCountInString(sliceStr[:res.End])
	}

	suffix := string(runes[j:])

	if missing {
		if !quoted {
			// Unquoted: the whole reference contributes nothing.
			return []string{prefix + suffix}, nil
		}
		// Quoted: splice a placeholder marking "expanded to empty", not
		// "absent", so `"$unset$x"` still equals `"$x"`.
		return []string{prefix + string(sentinel.VarExpandEmpty) + suffix}, nil
	}

	selected := selectIndices(values, indices)

	if quoted {
		joined := strings.Join(selected, string(delimiter))
		sep := ""
		if prefix != "" {
			// Same protective separator as the unquoted branch below: without
			// it, a still-unprocessed sentinel earlier in prefix would have
			// its own name scan bleed into this already-resolved text on the
			// next recursive pass.
			sep = string(sentinel.InternalSep)
		}
		return []string{prefix + sep + joined + suffix}, nil
	}

	out := make([]string, 0, len(selected))
	for _, item := range selected {
		sep := ""
		if prefix != "" {
			sep = string(sentinel.InternalSep)
		}
		out = append(out, prefix+sep+item+suffix)
	}

	return out, nil
}

func selectIndices(values []string, indices []int) []string {
	if indices == nil {
		return append([]string(nil), values...)
	}
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(values) {
			continue
		}
		out = append(out, values[idx-1])
	}
	return out
}

func asSliceError(err error, target **slicing.Error) bool {
	if se, ok := err.(*slicing.Error); ok {
		*target = se
		return true
	}
	return false
}
