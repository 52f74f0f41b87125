package expand

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnvVar struct{ v string }

func (e stubEnvVar) AsList() []string     { return []string{e.v} }
func (e stubEnvVar) AsString() string     { return e.v }
func (e stubEnvVar) Delimiter() rune      { return ' ' }
func (e stubEnvVar) MissingOrEmpty() bool { return e.v == "" }

type stubStore struct{ vars map[string]string }

func (s stubStore) Get(name string) (EnvVar, bool) {
	v, ok := s.vars[name]
	if !ok {
		return nil, false
	}
	return stubEnvVar{v}, true
}
func (s stubStore) PwdSlash() string { return "/cwd/" }
func (s stubStore) Names() []string  { return nil }

type stubWildcards struct {
	byDir         map[string][]string
	replacesToken bool
}

func (w stubWildcards) Expand(ctx context.Context, pattern, workingDir string, forCompletions bool, out *[]Completion) (int, error) {
	vals := w.byDir[workingDir]
	for _, v := range vals {
		c := NewCompletion(v)
		if w.replacesToken {
			c = c.WithFlag(ReplacesToken)
		}
		*out = append(*out, c)
	}
	return len(vals), nil
}

func TestExpandStringFastPathPlain(t *testing.T) {
	t.Parallel()

	status, comps, errs := ExpandString(context.Background(), "plainarg", 0, Collaborators{}, true)
	require.True(t, errs.Empty())
	assert.Equal(t, StatusOK, status)
	require.Len(t, comps, 1)
	assert.Equal(t, "plainarg", comps[0].Value)
}

// TestExpandStringForCompletionsSkipsFastPathOnCleanInput checks §4.1's
// requirement that the fast path only applies outside completion mode: a
// sentinel-free argument in completion mode must still reach the wildcard
// stage, which can turn it into a different set of completions (here,
// nothing, because the matcher finds no candidate).
func TestExpandStringForCompletionsSkipsFastPathOnCleanInput(t *testing.T) {
	t.Parallel()

	collab := Collaborators{
		WorkingDirs: []string{"/proj"},
		Wildcards:   stubWildcards{byDir: map[string][]string{}},
	}

	status, comps, errs := ExpandString(context.Background(), "docs", ForCompletions, collab, true)
	require.True(t, errs.Empty())
	assert.Equal(t, StatusOK, status)
	assert.Empty(t, comps, "clean completion-mode input must be dropped, not passed through, when the matcher finds nothing")
}

func TestExpandStringVariableSubstitution(t *testing.T) {
	t.Parallel()

	collab := Collaborators{
		Vars: stubStore{vars: map[string]string{"x": "hello"}},
	}

	status, comps, errs := ExpandString(context.Background(), "p$x.q", 0, collab, true)
	require.True(t, errs.Empty())
	assert.Equal(t, StatusOK, status)
	require.Len(t, comps, 1)
	assert.Equal(t, "phello.q", comps[0].Value)
}

func TestExpandStringWildcardMatch(t *testing.T) {
	t.Parallel()

	collab := Collaborators{
		WorkingDirs: []string{"/proj"},
		Wildcards:   stubWildcards{byDir: map[string][]string{"/proj": {"a.go", "b.go"}}},
	}

	status, comps, errs := ExpandString(context.Background(), "*.go", 0, collab, true)
	require.True(t, errs.Empty())
	assert.Equal(t, StatusWildcardMatch, status)
	assert.Len(t, comps, 2)
}

func TestExpandStringWildcardNoMatch(t *testing.T) {
	t.Parallel()

	collab := Collaborators{
		WorkingDirs: []string{"/proj"},
		Wildcards:   stubWildcards{byDir: map[string][]string{}},
	}

	status, comps, errs := ExpandString(context.Background(), "*.go", 0, collab, true)
	require.True(t, errs.Empty())
	assert.Equal(t, StatusWildcardNoMatch, status)
	assert.Empty(t, comps)
}

func TestExpandStringSyntaxErrorReported(t *testing.T) {
	t.Parallel()

	status, comps, errs := ExpandString(context.Background(), "$x[0]", 0, Collaborators{Vars: stubStore{vars: map[string]string{"x": "a"}}}, true)
	assert.Equal(t, StatusError, status)
	assert.Empty(t, comps)
	require.False(t, errs.Empty())
	assert.Equal(t, CodeSyntax, errs.Errs()[0].Code)
}

func TestExpandStringTildeUnexpandForCompletions(t *testing.T) {
	t.Parallel()

	collab := Collaborators{
		Vars:        stubStore{vars: map[string]string{"HOME": "/home/alice"}},
		WorkingDirs: []string{""},
		Wildcards: stubWildcards{
			byDir:         map[string][]string{"": {"/home/alice/docs"}},
			replacesToken: true,
		},
	}

	status, comps, errs := ExpandString(context.Background(), "~/docs", ForCompletions, collab, true)
	require.True(t, errs.Empty())
	assert.Equal(t, StatusWildcardMatch, status)
	require.Len(t, comps, 1)
	assert.Equal(t, "~/docs", comps[0].Value)
	assert.True(t, comps[0].Has(DontEscapeTildes), "un-expanded tilde completion must carry DontEscapeTildes")
}

// TestExpandStringTildeUnexpandSkipsNonReplacingCompletions verifies the
// REPLACES_TOKEN gate itself: a completion that does not replace the whole
// token must not be rewritten, even though its value sits under $HOME.
func TestExpandStringTildeUnexpandSkipsNonReplacingCompletions(t *testing.T) {
	t.Parallel()

	collab := Collaborators{
		Vars:        stubStore{vars: map[string]string{"HOME": "/home/alice"}},
		WorkingDirs: []string{""},
		Wildcards: stubWildcards{
			byDir:         map[string][]string{"": {"/home/alice/docs"}},
			replacesToken: false,
		},
	}

	status, comps, errs := ExpandString(context.Background(), "~/docs", ForCompletions, collab, true)
	require.True(t, errs.Empty())
	assert.Equal(t, StatusWildcardMatch, status)
	require.Len(t, comps, 1)
	assert.Equal(t, "/home/alice/docs", comps[0].Value)
	assert.False(t, comps[0].Has(DontEscapeTildes))
}

func TestExpandOneSucceedsForSingleCompletion(t *testing.T) {
	t.Parallel()

	value, ok, status, errs := ExpandOne(context.Background(), "plainarg", 0, Collaborators{}, true)
	require.True(t, errs.Empty())
	assert.True(t, ok)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, "plainarg", value)
}

func TestExpandOneFailsForMultipleCompletions(t *testing.T) {
	t.Parallel()

	collab := Collaborators{
		WorkingDirs: []string{"/proj"},
		Wildcards:   stubWildcards{byDir: map[string][]string{"/proj": {"a.go", "b.go"}}},
	}

	value, ok, status, errs := ExpandOne(context.Background(), "*.go", 0, collab, true)
	require.True(t, errs.Empty())
	assert.False(t, ok)
	assert.Equal(t, StatusWildcardMatch, status)
	assert.Empty(t, value)
}

func TestExpandOneFailsOnError(t *testing.T) {
	t.Parallel()

	value, ok, status, errs := ExpandOne(context.Background(), "$x[0]", 0, Collaborators{Vars: stubStore{vars: map[string]string{"x": "a"}}}, true)
	require.False(t, errs.Empty())
	assert.False(t, ok)
	assert.Equal(t, StatusError, status)
	assert.Empty(t, value)
}
