package cmdsubst

// Locate finds the first top-level `(...)` region in s, honoring
// backslash escapes and single/double quoting, starting the search at
// rune index from. begin and end are rune indices. It is the built-in
// default for the expand.Locator collaborator (§6's
// parse_util_locate_cmdsubst); callers with a richer tokenizer can supply
// their own.
//
// found is 1 if a region was located, 0 if there is no unescaped, unquoted
// `(` at or after from, and -1 if a `(` was found with no matching `)`.
// With acceptIncomplete, an unmatched `(` is instead reported as found
// (1), with end set to the length of s in runes.
func Locate(s string, from int, acceptIncomplete bool) (begin, end, found int) {
	runes := []rune(s)
	if from > len(runes) {
		from = len(runes)
	}

	inSingle, inDouble := false, false
	depth := 0
	begin = -1

	for i := from; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' {
			i++
			continue
		}

		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case inSingle || inDouble:
			// quoted: structural characters are literal
		case r == '(':
			if depth == 0 {
				begin = i
			}
			depth++
		case r == ')':
			if depth > 0 {
				depth--
				if depth == 0 {
					return begin, i, 1
				}
			}
		}
	}

	if begin >= 0 {
		if acceptIncomplete {
			return begin, len(runes), 1
		}
		return begin, len(runes), -1
	}

	return -1, -1, 0
}
