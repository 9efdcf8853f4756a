package app

import (
	"sort"

	"hotelnow/internal/domain"
)

// SortHotels orders in place by the selected key. The sort is stable so
// ties keep their fetch order and popularity is a true no-op.
func SortHotels(hotels []domain.Hotel, key domain.SortKey) {
	less := lessFor(key)
	if less == nil {
		return
	}
	sort.SliceStable(hotels, func(i, j int) bool { return less(hotels[i], hotels[j]) })
}

func lessFor(key domain.SortKey) func(a, b domain.Hotel) bool {
	switch key {
	case domain.SortPriceLow:
		return func(a, b domain.Hotel) bool { return a.Price.Float() < b.Price.Float() }
	case domain.SortPriceHigh:
		return func(a, b domain.Hotel) bool { return a.Price.Float() > b.Price.Float() }
	case domain.SortRating:
		return func(a, b domain.Hotel) bool { return a.Rating.Float() > b.Rating.Float() }
	default:
		// popularity: comparator reports 0 for every pair
		return nil
	}
}
