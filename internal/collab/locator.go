package collab

import "github.com/sniperrifle2004/fish-shell/expand"

// Locator wraps the pipeline's own paren-matching scanner (exposed by the
// expand package since the scanner itself lives under expand/internal,
// which this package cannot import directly) so it can be handed out
// through the expand.Locator interface.
type Locator struct{}

// NewLocator returns the default Locator.
func NewLocator() Locator { return Locator{} }

func (Locator) LocateCmdsubst(s string, from int, acceptIncomplete bool) (int, int, int) {
	return expand.LocateCmdsubst(s, from, acceptIncomplete)
}
