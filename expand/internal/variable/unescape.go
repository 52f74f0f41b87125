package variable

import (
	"strings"

	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// Unescape performs the reversible conversion from user syntax into
// sentinel form described in §4.3: `$` becomes VAR_EXPAND (or
// VAR_EXPAND_SINGLE inside a double-quoted region), a leading `~` or
// `%self` becomes its sentinel, `*`/`?` become wildcard sentinels outside
// quotes, and `{`, `}`, `,` become brace sentinels outside quotes.
// Quote characters themselves are consumed, not emitted: by the time a
// later stage sees the string there is no quoting left to track, only the
// sentinels that quoting produced.
//
// incomplete mirrors UNESCAPE_INCOMPLETE but does not change the result:
// an unterminated quote or a trailing lone backslash is always tolerated
// (treated as if closed at end of string, the backslash kept literally),
// and Unescape never returns a non-nil error.
func Unescape(s string, incomplete bool) (string, error) {
	var out strings.Builder
	inSingle, inDouble := false, false

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case r == '\\':
			if i+1 >= len(runes) {
				if incomplete {
					out.WriteRune('\\')
					continue
				}
				out.WriteRune('\\')
				continue
			}
			next := runes[i+1]
			if inSingle && next != '\\' && next != '\'' {
				out.WriteRune('\\')
				continue
			}
			out.WriteRune(next)
			i++
			continue

		case r == '\'' && !inDouble:
			inSingle = !inSingle
			continue

		case r == '"' && !inSingle:
			inDouble = !inDouble
			continue

		case r == '$':
			switch {
			case inSingle:
				out.WriteRune('$')
			case inDouble:
				out.WriteRune(sentinel.VarExpandSingle)
			default:
				out.WriteRune(sentinel.VarExpand)
			}
			continue

		case r == '~' && i == 0 && !inSingle && !inDouble:
			out.WriteRune(sentinel.HomeDir)
			continue

		case r == '%' && i == 0 && !inSingle && !inDouble && hasPrefixAt(runes, i, "%self"):
			out.WriteRune(sentinel.ProcessSelf)
			i += len("%self") - 1
			continue

		case r == '*' && !inSingle && !inDouble:
			if hasPrefixAt(runes, i, "**") {
				out.WriteRune(sentinel.AnyStringRecursive)
				i++
				continue
			}
			out.WriteRune(sentinel.AnyString)
			continue

		case r == '?' && !inSingle && !inDouble:
			out.WriteRune(sentinel.AnyChar)
			continue

		case r == '{' && !inSingle && !inDouble:
			out.WriteRune(sentinel.BraceBegin)
			continue

		case r == '}' && !inSingle && !inDouble:
			out.WriteRune(sentinel.BraceEnd)
			continue

		case r == ',' && !inSingle && !inDouble:
			out.WriteRune(sentinel.BraceSep)
			continue

		case r == ' ' && !inSingle:
			// A literal space only needs brace-sentinel form while it sits
			// inside a (potential) brace group; the brace stage decides
			// whether that context actually exists, and reverts it to a
			// plain space otherwise.
			out.WriteRune(sentinel.BraceSpace)
			continue

		default:
			out.WriteRune(r)
		}
	}

	return out.String(), nil
}

func hasPrefixAt(runes []rune, i int, prefix string) bool {
	pr := []rune(prefix)
	if i+len(pr) > len(runes) {
		return false
	}
	for k, p := range pr {
		if runes[i+k] != p {
			return false
		}
	}
	return true
}

// ReescapeDollar reverts every VAR_EXPAND/VAR_EXPAND_SINGLE sentinel back
// to a literal `$`, used when SkipVariables is set.
func ReescapeDollar(s string) string {
	return sentinel.Scrub(s, sentinel.VarExpand, sentinel.VarExpandSingle)
}
