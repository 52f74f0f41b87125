package wildcard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

type fakeMatcher struct {
	byDir map[string][]Match
	err   error
}

func (f fakeMatcher) Expand(ctx context.Context, pattern, workingDir string, forCompletions bool, out *[]Match) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	matches := f.byDir[workingDir]
	*out = append(*out, matches...)
	return len(matches), nil
}

func TestExpandNoWildcardPassesThrough(t *testing.T) {
	t.Parallel()

	res, matches, err := Expand(context.Background(), "plain.txt", Options{})
	require.NoError(t, err)
	assert.Equal(t, ResultPassthrough, res)
	require.Len(t, matches, 1)
	assert.Equal(t, "plain.txt", matches[0].Value)
}

func TestExpandMatchesAggregateAcrossDirs(t *testing.T) {
	t.Parallel()

	matcher := fakeMatcher{byDir: map[string][]Match{
		"a": {{Value: "a/file2.txt"}, {Value: "a/file10.txt"}},
		"b": {{Value: "b/other.txt"}},
	}}

	pattern := "file" + string(sentinel.AnyString)
	res, matches, err := Expand(context.Background(), pattern, Options{
		WorkingDirs: []string{"a", "b"},
		Matcher:     matcher,
	})
	require.NoError(t, err)
	assert.Equal(t, ResultMatch, res)
	require.Len(t, matches, 3)
}

func TestExpandNoMatchNonCompletion(t *testing.T) {
	t.Parallel()

	matcher := fakeMatcher{byDir: map[string][]Match{}}
	pattern := string(sentinel.AnyString) + ".go"

	res, matches, err := Expand(context.Background(), pattern, Options{
		WorkingDirs: []string{""},
		Matcher:     matcher,
	})
	require.NoError(t, err)
	assert.Equal(t, ResultNoMatch, res)
	assert.Empty(t, matches)
}

func TestExpandNoMatchForCompletionsIsDropped(t *testing.T) {
	t.Parallel()

	matcher := fakeMatcher{byDir: map[string][]Match{}}
	pattern := string(sentinel.AnyString)

	res, matches, err := Expand(context.Background(), pattern, Options{
		ForCompletions: true,
		WorkingDirs:    []string{""},
		Matcher:        matcher,
	})
	require.NoError(t, err)
	assert.Equal(t, ResultDropped, res)
	assert.Empty(t, matches)
}

func TestExpandSkipWildcardsRevertsSentinels(t *testing.T) {
	t.Parallel()

	pattern := "a" + string(sentinel.AnyString) + "b"
	res, matches, err := Expand(context.Background(), pattern, Options{SkipWildcards: true})
	require.NoError(t, err)
	assert.Equal(t, ResultPassthrough, res)
	require.Len(t, matches, 1)
	assert.Equal(t, "a*b", matches[0].Value)
}

func TestExpandExecutablesOnlyNeverExpandsWildcard(t *testing.T) {
	t.Parallel()

	matcher := fakeMatcher{byDir: map[string][]Match{"": {{Value: "hit"}}}}
	pattern := "a" + string(sentinel.AnyString)

	res, matches, err := Expand(context.Background(), pattern, Options{
		ExecutablesOnly: true,
		WorkingDirs:     []string{""},
		Matcher:         matcher,
	})
	require.NoError(t, err)
	assert.Equal(t, ResultPassthrough, res)
	require.Len(t, matches, 1)
	assert.Equal(t, "a*", matches[0].Value)
}

func TestSortNaturalOrdersNumericRuns(t *testing.T) {
	t.Parallel()

	in := []string{"file10.txt", "file2.txt", "file1.txt"}
	SortNatural(in)
	assert.Equal(t, []string{"file1.txt", "file2.txt", "file10.txt"}, in)
}
