package pricing

import (
	"github.com/samber/lo"

	"github.com/craftquote/quote-engine/pkg/types"
)

// InScope reports whether a (space, component) pair falls inside the given
// scope selection. An unrecognized mode excludes everything: failing closed
// here beats silently repricing rows the caller never selected.
func InScope(spaceID, componentID string, scope types.ScopeSelection) bool {
	switch scope.Mode {
	case types.ScopeModeAll:
		return true
	case types.ScopeModeSpaces:
		return lo.Contains(scope.SpaceIDs, spaceID)
	case types.ScopeModeComponents:
		if componentID == "" {
			return false
		}
		return lo.Contains(scope.ComponentKeys, types.ComponentKey(spaceID, componentID))
	default:
		return false
	}
}
