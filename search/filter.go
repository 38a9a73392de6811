package search

import (
	"strings"

	"github.com/trovia/trovia/core"
)

// Filter returns the ordered subsequence of records satisfying every
// active predicate in state. The filter is stable: relative input order
// is preserved, and the input slice is never mutated.
//
// Removed records are expected to be dropped by the caller before
// filtering; Filter itself only applies the user-visible predicates.
func Filter(records []core.Resolved, state core.FilterState, favorites map[string]bool) []core.Resolved {
	query := normalize(state.Query)

	out := make([]core.Resolved, 0, len(records))
	for _, r := range records {
		if !matches(r, state, favorites, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r core.Resolved, state core.FilterState, favorites map[string]bool, query string) bool {
	p := r.Provider

	if state.OnlyFavorites && !favorites[p.ID] {
		return false
	}

	if state.OnlyVerified && !r.Verified {
		return false
	}

	if state.Category != core.FilterAll && !matchesLabel(state.Category, p.Category, r.Source) {
		return false
	}

	if state.Location != core.FilterAll && !matchesLabel(state.Location, p.Location, r.Source) {
		return false
	}

	if state.Availability != core.FilterAll && state.Availability != string(p.Status) {
		return false
	}

	if query != "" && !strings.Contains(haystack(p), query) {
		return false
	}

	return true
}
