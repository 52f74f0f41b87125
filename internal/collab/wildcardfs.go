package collab

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sniperrifle2004/fish-shell/expand"
	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// WildcardMatcher expands a sentinel-encoded glob pattern against a
// working directory using doublestar, which is what gives
// AnyStringRecursive ("**") its cross-directory matching for free instead
// of a hand-rolled directory walk.
type WildcardMatcher struct{}

// NewWildcardMatcher returns the filesystem-backed WildcardMatcher.
func NewWildcardMatcher() WildcardMatcher { return WildcardMatcher{} }

func (WildcardMatcher) Expand(ctx context.Context, pattern, workingDir string, forCompletions bool, out *[]expand.Completion) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	glob := toDoublestarGlob(pattern)

	root := workingDir
	if root == "" {
		root = "."
	}
	if strings.HasPrefix(glob, "/") {
		root = "/"
		glob = strings.TrimPrefix(glob, "/")
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, glob)
	if err != nil {
		return 0, fmt.Errorf("wildcard: %w", err)
	}

	sort.Strings(matches)
	for _, m := range matches {
		*out = append(*out, expand.NewCompletion(m))
	}
	return len(matches), nil
}

// toDoublestarGlob rewrites the sentinel alphabet's wildcard runes into
// doublestar's glob syntax, and escapes every literal rune that syntax
// would otherwise treat specially, so a user's literal `[` or `\` behaves
// as plain text instead of a character class or escape.
func toDoublestarGlob(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case sentinel.AnyStringRecursive:
			b.WriteString("**")
		case sentinel.AnyString:
			b.WriteByte('*')
		case sentinel.AnyChar:
			b.WriteByte('?')
		case '\\', '[', ']', '{', '}', '!', '*', '?':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
