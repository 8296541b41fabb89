// Package applier removes listing nodes whose brand was classified delete.
package applier

import (
	"github.com/pagetools/brandsweep/models"
)

// Apply walks the entries in extraction order and removes each listing
// whose brand maps to the literal "delete". Any other value, and any brand
// absent from the decision map, leaves the listing untouched. Returns the
// number of listings removed. Removal mutates the parsed document in place
// and is not reversible.
func Apply(entries []models.Entry, decisions models.DecisionMap) int {
	removed := 0
	for _, e := range entries {
		if decisions[e.Brand] != models.DecisionDelete {
			continue
		}
		e.Listing.Remove()
		removed++
	}
	return removed
}
