package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Source identifies where a provider record originated.
type Source string

const (
	// SourceStatic marks records from the bundled catalog dataset.
	SourceStatic Source = "static"
	// SourceVendor marks records submitted through the vendor surface.
	SourceVendor Source = "vendor"
)

// Status is a provider's availability status. Values outside the three
// known constants are tolerated and treated as the lowest-priority bucket.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusBusy      Status = "Busy"
	StatusOffline   Status = "Offline"
)

// Provider is a single service-provider record as persisted. Verification
// survives under two spellings in older vendor submissions; use
// OwnVerified rather than reading the fields directly.
type Provider struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Location string  `json:"location"`
	Status   Status  `json:"status"`
	Rating   float64 `json:"rating"`

	// Legacy spelling, written by early vendor submissions.
	IsVerified *bool `json:"isVerified,omitempty"`
	// Current spelling.
	Verified *bool `json:"verified,omitempty"`

	// Origin markers. Source wins when set; IsVendor is the marker older
	// submissions carry instead.
	Source   Source `json:"source,omitempty"`
	IsVendor bool   `json:"isVendor,omitempty"`
}

// OwnVerified reports the record's own verification flag, before any
// moderation override. The legacy "isVerified" spelling wins when both
// are present.
func (p *Provider) OwnVerified() bool {
	if p.IsVerified != nil {
		return *p.IsVerified
	}
	if p.Verified != nil {
		return *p.Verified
	}
	return false
}

// Origin resolves the record's source tag: an explicit Source wins, then
// the vendor marker, then static.
func (p *Provider) Origin() Source {
	if p.Source != "" {
		return p.Source
	}
	if p.IsVendor {
		return SourceVendor
	}
	return SourceStatic
}

// Override is a moderation patch applied on top of a provider record at
// read time. Nil fields mean "no opinion".
type Override struct {
	Removed  *bool `json:"removed,omitempty"`
	Verified *bool `json:"isVerified,omitempty"`
}

// OverrideKey builds the key an override is stored under.
func OverrideKey(source Source, id string) string {
	return string(source) + ":" + id
}

// Resolved is a provider record with overrides applied: its effective
// source, verification, and removal state. Produced by the overlay
// resolver; never persisted.
type Resolved struct {
	Provider Provider
	Source   Source
	Verified bool
	Removed  bool
}

// FilterAll is the sentinel meaning "no filtering" for the discrete
// filter fields.
const FilterAll = "all"

// FilterState holds the current search text and discrete filter
// selections.
type FilterState struct {
	Query         string
	Category      string
	Location      string
	Availability  string
	OnlyFavorites bool
	OnlyVerified  bool
}

// NewFilterState returns a FilterState with every discrete filter set to
// the "all" sentinel.
func NewFilterState() FilterState {
	return FilterState{
		Category:     FilterAll,
		Location:     FilterAll,
		Availability: FilterAll,
	}
}

// SortMode selects the ordering applied after scoring.
type SortMode string

const (
	// SortRelevance is the default: composite-score descending.
	SortRelevance SortMode = "relevance"
	// SortRatingDesc orders by raw rating, highest first.
	SortRatingDesc SortMode = "rating-desc"
	// SortNameAsc orders by name using locale-aware collation.
	SortNameAsc SortMode = "name-asc"
	// SortAvailability orders Available < Busy < everything else.
	SortAvailability SortMode = "status-availability"
)

// RankedProvider is a resolved record annotated with its composite score
// and top-listing flag. Ephemeral: recomputed on every ranking pass.
type RankedProvider struct {
	Resolved
	Score float64
	Top   bool
}

// Profile is the persisted user profile written by the auth surface.
type Profile struct {
	Location string `json:"location,omitempty"`
	City     string `json:"city,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ViewerLocation returns the profile's location, falling back to the
// city field. Empty when neither is set.
func (p Profile) ViewerLocation() string {
	if p.Location != "" {
		return p.Location
	}
	return p.City
}

// IDFromContent generates a deterministic ID from text content using
// BLAKE2b hashing. Identical content produces identical IDs.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
