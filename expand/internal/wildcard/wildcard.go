// Package wildcard implements the final pipeline stage (§4.6): it scrubs
// internal separators, decides whether the argument needs filesystem
// matching at all, resolves the set of working directories to search
// (plain cwd, or PATH/CDPATH derived), and aggregates the matcher's
// results with natural sort.
package wildcard

import (
	"context"

	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// Match is one filesystem match returned by the collaborator.
type Match struct {
	Value         string
	ReplacesToken bool
}

// Matcher mirrors expand.WildcardMatcher.
type Matcher interface {
	Expand(ctx context.Context, pattern, workingDir string, forCompletions bool, out *[]Match) (int, error)
}

// Result classifies the stage's outcome the way §4.6 and §7 require.
type Result int

const (
	// ResultPassthrough means no filesystem delegation happened; the
	// returned matches hold the single scrubbed input string.
	ResultPassthrough Result = iota
	// ResultMatch means the matcher found at least one file in at least
	// one working directory.
	ResultMatch
	// ResultNoMatch means a wildcard was present but nothing matched in
	// any working directory.
	ResultNoMatch
	// ResultDropped means the caller was completing and the matcher found
	// nothing (whether or not a wildcard was present): the completion is
	// silently dropped rather than reported.
	ResultDropped
)

// Options bundles the flags and collaborators the stage consults.
type Options struct {
	ForCompletions    bool
	SkipWildcards     bool
	ExecutablesOnly   bool
	SpecialForCd      bool
	SpecialForCommand bool

	WorkingDirs []string
	Path        []string
	CdPath      []string

	Matcher Matcher
}

// Expand runs the stage on one string.
func Expand(ctx context.Context, s string, opts Options) (Result, []Match, error) {
	scrubbed := sentinel.Scrub(s, sentinel.InternalSep)

	if opts.SkipWildcards {
		scrubbed = sentinel.Scrub(scrubbed,
			sentinel.AnyChar, sentinel.AnyString, sentinel.AnyStringRecursive)
		return ResultPassthrough, []Match{{Value: scrubbed}}, nil
	}

	hasWildcard := sentinel.ContainsWildcard(scrubbed)

	switch {
	case opts.ExecutablesOnly && hasWildcard:
		// Historical behavior: never expand a wildcard used as a command
		// name lookup.
		return ResultPassthrough, []Match{{Value: sentinel.ScrubAll(scrubbed)}}, nil

	case (opts.ForCompletions) || hasWildcard:
		dirs := workingDirectories(scrubbed, opts)
		return delegate(ctx, scrubbed, dirs, opts)

	case opts.ForCompletions:
		return ResultDropped, nil, nil

	default:
		return ResultPassthrough, []Match{{Value: sentinel.ScrubAll(scrubbed)}}, nil
	}
}

// workingDirectories resolves the §4.6 PATH/CDPATH special cases.
func workingDirectories(pattern string, opts Options) []string {
	if !opts.SpecialForCd && !opts.SpecialForCommand {
		return defaultDirs(opts.WorkingDirs)
	}

	if looksRooted(pattern, opts.SpecialForCommand) {
		return defaultDirs(opts.WorkingDirs)
	}

	if opts.SpecialForCd {
		if len(opts.CdPath) == 0 {
			return []string{"."}
		}
		return opts.CdPath
	}

	if len(opts.Path) == 0 {
		return []string{""}
	}
	return opts.Path
}

func defaultDirs(dirs []string) []string {
	if len(dirs) == 0 {
		return []string{""}
	}
	return dirs
}

// looksRooted reports whether pattern already names its own directory, in
// which case PATH/CDPATH must not be consulted.
func looksRooted(pattern string, forCommand bool) bool {
	if hasPrefix(pattern, "/") || hasPrefix(pattern, "./") || hasPrefix(pattern, "../") {
		return true
	}
	if forCommand {
		for _, r := range pattern {
			if r == '/' {
				return true
			}
		}
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return s[:len(prefix)] == prefix
}

func delegate(ctx context.Context, pattern string, dirs []string, opts Options) (Result, []Match, error) {
	var all []Match
	anyMatched := false

	for _, dir := range dirs {
		var out []Match
		n, err := opts.Matcher.Expand(ctx, pattern, dir, opts.ForCompletions, &out)
		if err != nil {
			return 0, nil, err
		}
		if n < 0 {
			return 0, nil, context.Canceled
		}
		if n > 0 {
			anyMatched = true
		}
		all = append(all, out...)
	}

	values := make([]string, len(all))
	for i, m := range all {
		values[i] = m.Value
	}
	SortNatural(values)
	sorted := make([]Match, len(all))
	byValue := make(map[string][]Match, len(all))
	for _, m := range all {
		byValue[m.Value] = append(byValue[m.Value], m)
	}
	for i, v := range values {
		ms := byValue[v]
		sorted[i] = ms[0]
		byValue[v] = ms[1:]
	}

	if anyMatched {
		return ResultMatch, sorted, nil
	}

	if opts.ForCompletions {
		return ResultDropped, nil, nil
	}

	return ResultNoMatch, nil, nil
}
