package storage

// Shared persisted keys. External surfaces write Vendors, Overrides, and
// Profile; the directory core writes Favorites and RecentSearches.
const (
	// KeyFavorites holds a JSON list of favorited provider IDs.
	KeyFavorites = "favorites"

	// KeyRecentSearches holds a JSON list of recent search terms,
	// most-recent-first, capped at five, de-duplicated case-insensitively.
	KeyRecentSearches = "searches:recent"

	// KeyVendors holds the JSON list of vendor-submitted provider records.
	KeyVendors = "vendors"

	// KeyOverrides holds the JSON map of moderation overrides, keyed
	// "source:id".
	KeyOverrides = "overrides"

	// KeyProfile holds the JSON profile written by the auth surface.
	KeyProfile = "profile"
)

// RecentSearchLimit caps the recent-search history length.
const RecentSearchLimit = 5
