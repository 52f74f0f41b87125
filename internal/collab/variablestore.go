// Package collab provides default, process-environment-backed
// implementations of every collaborator interface expand.Collaborators
// needs, for callers (chiefly cmd/fishexpand) that have no shell of their
// own to delegate to.
package collab

import (
	"os"
	"sort"
	"strings"

	"github.com/sniperrifle2004/fish-shell/expand"
)

// EnvVar is a single os.Environ()-backed variable. The OS environment has
// no notion of a shell's list variables, so AsList splits the value on
// whitespace and the delimiter is always a space.
type EnvVar struct {
	value string
}

func (e EnvVar) AsList() []string {
	if e.value == "" {
		return nil
	}
	return strings.Fields(e.value)
}

func (e EnvVar) AsString() string    { return e.value }
func (e EnvVar) Delimiter() rune     { return ' ' }
func (e EnvVar) MissingOrEmpty() bool { return e.value == "" }

// VariableStore reads os.Environ() plus an overlay of shell-local
// variables set via Set, without touching the real process environment.
type VariableStore struct {
	overlay map[string]string
	cwd     string
}

// NewVariableStore builds a VariableStore seeded from the process
// environment, with PWD normalized to cwd.
func NewVariableStore(cwd string) *VariableStore {
	s := &VariableStore{overlay: make(map[string]string), cwd: cwd}
	if cwd != "" {
		s.overlay["PWD"] = cwd
	}
	return s
}

// Set overlays name with value, shadowing the process environment.
func (s *VariableStore) Set(name, value string) {
	s.overlay[name] = value
}

func (s *VariableStore) Get(name string) (expand.EnvVar, bool) {
	if v, ok := s.overlay[name]; ok {
		return EnvVar{v}, true
	}
	if v, ok := os.LookupEnv(name); ok {
		return EnvVar{v}, true
	}
	return nil, false
}

func (s *VariableStore) PwdSlash() string {
	if s.cwd == "" {
		return "/"
	}
	if strings.HasSuffix(s.cwd, "/") {
		return s.cwd
	}
	return s.cwd + "/"
}

func (s *VariableStore) Names() []string {
	seen := make(map[string]bool)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			seen[kv[:i]] = true
		}
	}
	for name := range s.overlay {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
