package search

import (
	"strings"

	"github.com/trovia/trovia/core"
)

// normalize trims and lowercases a query or location string.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// haystack builds the lowercased text a free-text query is matched
// against: name, category, and location joined by spaces.
func haystack(p core.Provider) string {
	return strings.ToLower(p.Name + " " + p.Category + " " + p.Location)
}

// matchesLabel compares a selected filter label against a record's
// field value. Static records compare exactly; vendor records compare
// case-insensitively.
//
// TODO: normalize both paths to case-insensitive once the stored vendor
// labels are migrated; the asymmetry is inherited from the original
// submission surfaces and is pinned by the filter tests until then.
func matchesLabel(selected, value string, source core.Source) bool {
	if source == core.SourceVendor {
		return strings.EqualFold(selected, value)
	}
	return selected == value
}
