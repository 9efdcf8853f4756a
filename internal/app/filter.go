package app

import (
	"math"
	"strings"

	"hotelnow/internal/domain"
)

// PriceRange is a half-open interval [Min, Max) identified by the label the
// filter sidebar shows.
type PriceRange struct {
	Label string
	Min   float64
	Max   float64
}

// PriceRanges is the fixed bucket table. Order matters only for display;
// matching is by label.
var PriceRanges = []PriceRange{
	{Label: "Under ₹1,500", Min: 0, Max: 1500},
	{Label: "₹1,500 - ₹2,000", Min: 1500, Max: 2000},
	{Label: "₹2,000 - ₹2,500", Min: 2000, Max: 2500},
	{Label: "₹2,500 - ₹3,000", Min: 2500, Max: 3000},
	{Label: "₹3,000 & above", Min: 3000, Max: math.Inf(1)},
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price < r.Max
}

func findPriceRange(label string) (PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.Label == label {
			return r, true
		}
	}
	return PriceRange{}, false
}

// MatchesPrice reports whether the hotel's price falls in any selected
// range. An empty selection matches everything; unknown labels match
// nothing on their own.
func MatchesPrice(h domain.Hotel, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	price := h.Price.Float()
	for _, label := range selected {
		if r, ok := findPriceRange(label); ok && r.Contains(price) {
			return true
		}
	}
	return false
}

// MatchesLocality is a case-sensitive exact match against the selected
// locality names; empty selection matches everything.
func MatchesLocality(h domain.Hotel, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, name := range selected {
		if h.Locality == name {
			return true
		}
	}
	return false
}

// MatchesCity is always applied: case-insensitive exact match on the route's
// city segment.
func MatchesCity(h domain.Hotel, city string) bool {
	return strings.EqualFold(h.City, city)
}

// FilterHotels AND-combines the three predicates, preserving fetch order.
func FilterHotels(hotels []domain.Hotel, city string, sel domain.FilterSelection) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if MatchesCity(h, city) && MatchesLocality(h, sel.Localities) && MatchesPrice(h, sel.Prices) {
			out = append(out, h)
		}
	}
	return out
}

// LocalityOptions returns the localities offered for a city's filter
// sidebar: only those whose parent city matches, compared case-insensitively.
func LocalityOptions(all []domain.Locality, city string) []domain.Locality {
	out := make([]domain.Locality, 0, len(all))
	for _, l := range all {
		if strings.EqualFold(l.City, city) {
			out = append(out, l)
		}
	}
	return out
}
