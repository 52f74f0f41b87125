package home

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

type fakeEnvVar struct{ v string }

func (f fakeEnvVar) AsString() string     { return f.v }
func (f fakeEnvVar) MissingOrEmpty() bool { return f.v == "" }

type fakeStore struct{ vars map[string]string }

func (s fakeStore) Get(name string) (EnvVar, bool) {
	v, ok := s.vars[name]
	if !ok {
		return nil, false
	}
	return fakeEnvVar{v}, true
}

type fakeUserDB struct{ homes map[string]string }

func (u fakeUserDB) Lookup(username string) (string, bool) {
	h, ok := u.homes[username]
	return h, ok
}

func TestExpandBareTilde(t *testing.T) {
	t.Parallel()

	store := fakeStore{vars: map[string]string{"HOME": "/home/alice"}}
	in := string(sentinel.HomeDir) + "/docs"

	got := Expand(in, store, nil, 0)
	assert.Equal(t, "/home/alice/docs", got)
}

func TestExpandUserTilde(t *testing.T) {
	t.Parallel()

	users := fakeUserDB{homes: map[string]string{"bob": "/home/bob"}}
	in := string(sentinel.HomeDir) + "bob/docs"

	got := Expand(in, fakeStore{}, users, 0)
	assert.Equal(t, "/home/bob/docs", got)
}

func TestExpandUnknownUserRestoresLiteral(t *testing.T) {
	t.Parallel()

	users := fakeUserDB{homes: map[string]string{}}
	in := string(sentinel.HomeDir) + "nobody/docs"

	got := Expand(in, fakeStore{}, users, 0)
	assert.Equal(t, "~nobody/docs", got)
}

func TestExpandMissingHomeBecomesEmpty(t *testing.T) {
	t.Parallel()

	in := string(sentinel.HomeDir) + "/docs"
	got := Expand(in, fakeStore{vars: map[string]string{}}, nil, 0)
	assert.Equal(t, "", got)
}

func TestExpandProcessSelf(t *testing.T) {
	t.Parallel()

	in := string(sentinel.ProcessSelf) + "/status"
	got := Expand(in, fakeStore{}, nil, 4242)
	assert.Equal(t, "4242/status", got)
}

func TestExpandNoSentinelPassesThrough(t *testing.T) {
	t.Parallel()

	got := Expand("plain/path", fakeStore{}, nil, 0)
	assert.Equal(t, "plain/path", got)
}
