package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/trovia/trovia/core"
)

// DefaultViewerLocation is the reference location used when the persisted
// profile carries none.
const DefaultViewerLocation = "New York"

// TopCount is how many leading results get the top-listing flag.
const TopCount = 3

// Composite score weights.
const (
	locationWeight     = 0.5
	ratingWeight       = 0.35
	availabilityWeight = 0.15
)

// LocationScore scores how well a provider's location matches the
// viewer's: 1 for an exact match (case-insensitive, trimmed), 0.8 when
// one contains the other, 0 otherwise or when either side is empty.
func LocationScore(viewer, provider string) float64 {
	v := normalize(viewer)
	p := normalize(provider)
	if v == "" || p == "" {
		return 0
	}
	if v == p {
		return 1
	}
	if strings.Contains(v, p) || strings.Contains(p, v) {
		return 0.8
	}
	return 0
}

func availabilityBoost(s core.Status) float64 {
	switch s {
	case core.StatusAvailable:
		return 1
	case core.StatusBusy:
		return 0.5
	default:
		return 0
	}
}

// statusRank orders Available < Busy < everything else for the
// availability sort mode.
func statusRank(s core.Status) int {
	switch s {
	case core.StatusAvailable:
		return 0
	case core.StatusBusy:
		return 1
	default:
		return 2
	}
}

// Score computes the composite relevance score for a resolved record.
// Malformed ratings are clamped and unknown statuses fall into the
// lowest availability bucket; scoring never fails.
func Score(r core.Resolved, viewerLocation string) float64 {
	loc := LocationScore(viewerLocation, r.Provider.Location)
	rating := core.ClampRating(r.Provider.Rating) / 5
	avail := availabilityBoost(r.Provider.Status)
	return locationWeight*loc + ratingWeight*rating + availabilityWeight*avail
}

// Rank annotates each record with its composite score and orders the
// result. The default mode orders by score descending; an explicit sort
// mode replaces that ordering afterwards. All sorts are stable, so equal
// keys keep their prior relative order. The first TopCount records of
// the final ordering are flagged Top.
func Rank(records []core.Resolved, viewerLocation string, mode core.SortMode) []core.RankedProvider {
	ranked := make([]core.RankedProvider, len(records))
	for i, r := range records {
		ranked[i] = core.RankedProvider{Resolved: r, Score: Score(r, viewerLocation)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	switch mode {
	case core.SortRatingDesc:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Provider.Rating > ranked[j].Provider.Rating
		})
	case core.SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(ranked, func(i, j int) bool {
			return c.CompareString(ranked[i].Provider.Name, ranked[j].Provider.Name) < 0
		})
	case core.SortAvailability:
		sort.SliceStable(ranked, func(i, j int) bool {
			return statusRank(ranked[i].Provider.Status) < statusRank(ranked[j].Provider.Status)
		})
	}

	for i := range ranked {
		if i == TopCount {
			break
		}
		ranked[i].Top = true
	}
	return ranked
}
