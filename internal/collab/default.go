package collab

import (
	"os"
	"strings"

	"github.com/sniperrifle2004/fish-shell/expand"
)

// NewDefaultCollaborators assembles a full expand.Collaborators from the
// process environment: an os.Environ-backed VariableStore, an empty
// History (since a standalone tool has no session to remember), an
// os/exec CmdsubstExecutor, an os/user UserDB, and a doublestar-backed
// WildcardMatcher. cwd seeds PWD and the default working directory list.
func NewDefaultCollaborators(cwd string) expand.Collaborators {
	if cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			cwd = wd
		}
	}

	vars := NewVariableStore(cwd)

	return expand.Collaborators{
		Vars:        vars,
		Hist:        NewHistory(nil),
		Cmdsubst:    NewExecutor(),
		Users:       NewUserDB(),
		Wildcards:   NewWildcardMatcher(),
		Locate:      NewLocator(),
		WorkingDirs: []string{cwd},
		Path:        splitPath(os.Getenv("PATH")),
		CdPath:      splitPath(os.Getenv("CDPATH")),
		ProcessID:   os.Getpid(),
	}
}

func splitPath(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, string(os.PathListSeparator))
}
