package variable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnvVar struct {
	list  []string
	delim rune
}

func (f fakeEnvVar) AsList() []string     { return f.list }
func (f fakeEnvVar) AsString() string     { return join(f.list, string(f.delim)) }
func (f fakeEnvVar) Delimiter() rune      { return f.delim }
func (f fakeEnvVar) MissingOrEmpty() bool { return len(f.list) == 0 }

func join(list []string, sep string) string {
	out := ""
	for i, v := range list {
		if i > 0 {
			out += sep
		}
		out += v
	}
	return out
}

type fakeStore struct {
	vars map[string]fakeEnvVar
}

func (s fakeStore) Get(name string) (EnvVar, bool) {
	v, ok := s.vars[name]
	if !ok {
		return nil, false
	}
	return v, true
}

func TestExpandSimpleVariable(t *testing.T) {
	t.Parallel()

	store := fakeStore{vars: map[string]fakeEnvVar{"x": {list: []string{"hello"}, delim: ' '}}}

	out, err := Expand("p$x", false, false, store, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"phello"}, out)
}

func TestExpandUnsetUnquotedVanishes(t *testing.T) {
	t.Parallel()

	store := fakeStore{vars: map[string]fakeEnvVar{}}

	out, err := Expand("a$unset.b", false, false, store, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.b"}, out)
}

func TestExpandUnsetQuotedEqualsSetQuoted(t *testing.T) {
	t.Parallel()

	store := fakeStore{vars: map[string]fakeEnvVar{}}

	unset, err := Expand(`"$unset$v"`, false, false, store, nil, false)
	require.NoError(t, err)

	store2 := fakeStore{vars: map[string]fakeEnvVar{"v": {list: []string{"val"}, delim: ' '}}}
	withV, err := Expand(`"$v"`, false, false, store2, nil, false)
	require.NoError(t, err)

	unsetAgainstV, err := Expand(`"$unset$v"`, false, false, store2, nil, false)
	require.NoError(t, err)

	assert.Equal(t, unsetAgainstV, withV)
	assert.Equal(t, []string{""}, unset)
}

func TestExpandCartesianProduct(t *testing.T) {
	t.Parallel()

	store := fakeStore{vars: map[string]fakeEnvVar{"x": {list: []string{"a", "b"}, delim: ' '}}}

	// The dot terminates the variable name so the suffix isn't folded into
	// it; a trailing letter would instead become part of the name itself.
	out, err := Expand("p$x.q", false, false, store, nil, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pa.q", "pb.q"}, out)
	assert.Len(t, out, 2)
}

func TestExpandZeroIndexIsError(t *testing.T) {
	t.Parallel()

	store := fakeStore{vars: map[string]fakeEnvVar{"x": {list: []string{"a", "b"}, delim: ' '}}}

	_, err := Expand("$x[0]", false, false, store, nil, false)
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 3, synErr.Offset)
}

func TestExpandSkipVariablesReescapes(t *testing.T) {
	t.Parallel()

	out, err := Expand("p$x", true, false, fakeStore{}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"p$x"}, out)
}
