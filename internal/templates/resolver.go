package templates

import (
	"github.com/monoforge/cli/internal/request"
)

// Resolve selects the bundles participating in a generation run. Selection
// is a pure function of the request: same request, same bundles, in
// registry declaration order.
func Resolve(req request.GenerationRequest) []Bundle {
	var selected []Bundle
	for _, b := range registry {
		if b.Applies(req) {
			selected = append(selected, b)
		}
	}
	return selected
}

// BundleIDs lists the ids of the given bundles, for logging and plans.
func BundleIDs(bundles []Bundle) []string {
	ids := make([]string, 0, len(bundles))
	for _, b := range bundles {
		ids = append(ids, b.ID)
	}
	return ids
}
