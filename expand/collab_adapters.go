package expand

import (
	"context"

	"github.com/sniperrifle2004/fish-shell/expand/internal/cmdsubst"
	"github.com/sniperrifle2004/fish-shell/expand/internal/home"
	"github.com/sniperrifle2004/fish-shell/expand/internal/variable"
	"github.com/sniperrifle2004/fish-shell/expand/internal/wildcard"
)

// LocateCmdsubst exposes the built-in top-level `(...)` scanner
// (expand/internal/cmdsubst.Locate) to callers outside this module tree,
// such as internal/collab's default Locator, which cannot import
// expand/internal/cmdsubst directly: that package's own internal/ boundary
// only admits importers rooted under expand/.
func LocateCmdsubst(s string, from int, acceptIncomplete bool) (begin, end, found int) {
	return cmdsubst.Locate(s, from, acceptIncomplete)
}

// The stage packages under internal/ each declare their own minimal
// collaborator interfaces rather than importing this package, which avoids
// an import cycle (this package imports all of them to wire the pipeline
// together). The adapters below bridge the root Collaborators fields to
// those narrower, independently-named interfaces.

type variableEnvVarAdapter struct{ v EnvVar }

func (a variableEnvVarAdapter) AsList() []string     { return a.v.AsList() }
func (a variableEnvVarAdapter) AsString() string     { return a.v.AsString() }
func (a variableEnvVarAdapter) Delimiter() rune      { return a.v.Delimiter() }
func (a variableEnvVarAdapter) MissingOrEmpty() bool { return a.v.MissingOrEmpty() }

type varStoreAdapter struct{ s VariableStore }

func (a varStoreAdapter) Get(name string) (variable.EnvVar, bool) {
	if a.s == nil {
		return nil, false
	}
	ev, ok := a.s.Get(name)
	if !ok {
		return nil, false
	}
	return variableEnvVarAdapter{ev}, true
}

type homeEnvVarAdapter struct{ v EnvVar }

func (a homeEnvVarAdapter) AsString() string     { return a.v.AsString() }
func (a homeEnvVarAdapter) MissingOrEmpty() bool { return a.v.MissingOrEmpty() }

type homeStoreAdapter struct{ s VariableStore }

func (a homeStoreAdapter) Get(name string) (home.EnvVar, bool) {
	if a.s == nil {
		return nil, false
	}
	ev, ok := a.s.Get(name)
	if !ok {
		return nil, false
	}
	return homeEnvVarAdapter{ev}, true
}

type wildcardMatcherAdapter struct{ m WildcardMatcher }

func (a wildcardMatcherAdapter) Expand(ctx context.Context, pattern, workingDir string, forCompletions bool, out *[]wildcard.Match) (int, error) {
	if a.m == nil {
		return 0, nil
	}
	var comps []Completion
	n, err := a.m.Expand(ctx, pattern, workingDir, forCompletions, &comps)
	for _, c := range comps {
		*out = append(*out, wildcard.Match{Value: c.Value, ReplacesToken: c.Has(ReplacesToken)})
	}
	return n, err
}
