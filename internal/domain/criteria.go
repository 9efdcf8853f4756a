package domain

// SearchCriteria is the transient payload the search form hands to the list
// and detail views. It is never persisted; a reload loses it.
type SearchCriteria struct {
	City      string
	StartDate string // ISO-8601, may be empty
	EndDate   string // ISO-8601, may be empty
	Guests    int
}

// FilterSelection is the per-view filter/sort state. Empty sets mean
// match-all; only an explicit clear-all resets it.
type FilterSelection struct {
	Prices     []string `json:"prices"`     // selected price-range labels
	Localities []string `json:"localities"` // selected locality names
	Sort       SortKey  `json:"sort,omitempty"`
}

func (f FilterSelection) ActiveCount() int { return len(f.Prices) + len(f.Localities) }

type SortKey string

const (
	SortPopularity SortKey = "popularity" // default, preserves fetch order
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRating     SortKey = "rating"
)

// ParseSortKey falls back to popularity for unknown or empty values, which
// is the sort the list opens with.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceLow, SortPriceHigh, SortRating:
		return SortKey(s)
	default:
		return SortPopularity
	}
}
