// Package home implements the home-directory and percent-self stage
// (§4.5): it resolves a leading `~` (bare or `~user`) against HOME or the
// user database, and a leading `%self` against the process id.
package home

import (
	"path"
	"strconv"
	"strings"

	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

// EnvVar mirrors expand.EnvVar.
type EnvVar interface {
	AsString() string
	MissingOrEmpty() bool
}

// Store mirrors expand.VariableStore, restricted to the one lookup this
// stage needs.
type Store interface {
	Get(name string) (EnvVar, bool)
}

// UserDB mirrors expand.UserDB.
type UserDB interface {
	Lookup(username string) (string, bool)
}

// Expand runs the stage on one completion string. processID is
// substituted for a leading PROCESS_SELF sentinel.
func Expand(s string, store Store, users UserDB, processID int) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	switch runes[0] {
	case sentinel.ProcessSelf:
		return strconv.Itoa(processID) + string(runes[1:])
	case sentinel.HomeDir:
		return expandTilde(runes, store, users)
	default:
		return s
	}
}

func expandTilde(runes []rune, store Store, users UserDB) string {
	rest := runes[1:]
	slashIdx := len(rest)
	for i, r := range rest {
		if r == '/' {
			slashIdx = i
			break
		}
	}
	username := string(rest[:slashIdx])
	tail := string(rest[slashIdx:])

	var home string
	var ok bool

	if username == "" {
		if store != nil {
			if ev, found := store.Get("HOME"); found && !ev.MissingOrEmpty() {
				home, ok = ev.AsString(), true
			}
		}
		if !ok {
			// HOME missing or empty: the whole completion becomes empty.
			return ""
		}
	} else {
		if users != nil {
			home, ok = users.Lookup(username)
		}
		if !ok {
			// Resolution failed: restore the literal tilde form.
			return "~" + username + tail
		}
	}

	return normalizeSlashes(home) + tail
}

// normalizeSlashes collapses a run of `/` (path.Clean already collapses
// "." and ".." segments and duplicate separators, but only if there is at
// least one separator to anchor on) without disturbing a relative value.
func normalizeSlashes(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "/") {
		return path.Clean(p)
	}
	return p
}
