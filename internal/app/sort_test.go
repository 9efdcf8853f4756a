package app_test

import (
	"testing"

	"hotelnow/internal/app"
	"hotelnow/internal/domain"
)

func ratedHotel(id string, price, rating float64) domain.Hotel {
	return domain.Hotel{ID: id, Price: domain.Number(price), Rating: domain.Number(rating)}
}

func ids(hotels []domain.Hotel) []string {
	out := make([]string, len(hotels))
	for i, h := range hotels {
		out[i] = h.ID
	}
	return out
}

func assertOrder(t *testing.T, got []domain.Hotel, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestSortHotels_PriceLowToHigh(t *testing.T) {
	hs := []domain.Hotel{
		ratedHotel("a", 2200, 4.5),
		ratedHotel("b", 1200, 4.2),
		ratedHotel("c", 3400, 4.7),
	}
	app.SortHotels(hs, domain.SortPriceLow)
	assertOrder(t, hs, "b", "a", "c")
}

func TestSortHotels_PriceHighToLow(t *testing.T) {
	hs := []domain.Hotel{
		ratedHotel("a", 2200, 4.5),
		ratedHotel("b", 1200, 4.2),
		ratedHotel("c", 3400, 4.7),
	}
	app.SortHotels(hs, domain.SortPriceHigh)
	assertOrder(t, hs, "c", "a", "b")
}

func TestSortHotels_RatingDescending(t *testing.T) {
	hs := []domain.Hotel{
		ratedHotel("a", 2200, 4.5),
		ratedHotel("b", 1200, 4.2),
		ratedHotel("c", 3400, 4.7),
	}
	app.SortHotels(hs, domain.SortRating)
	assertOrder(t, hs, "c", "a", "b")
}

func TestSortHotels_TiesKeepFetchOrder(t *testing.T) {
	hs := []domain.Hotel{
		ratedHotel("first", 1500, 4.0),
		ratedHotel("second", 1500, 4.0),
		ratedHotel("third", 1000, 4.0),
		ratedHotel("fourth", 1500, 4.0),
	}
	app.SortHotels(hs, domain.SortPriceLow)
	assertOrder(t, hs, "third", "first", "second", "fourth")

	app.SortHotels(hs, domain.SortRating)
	assertOrder(t, hs, "third", "first", "second", "fourth")
}

func TestSortHotels_PopularityIsNoOp(t *testing.T) {
	hs := []domain.Hotel{
		ratedHotel("z", 3400, 1.0),
		ratedHotel("a", 1200, 5.0),
		ratedHotel("m", 2200, 3.0),
	}
	app.SortHotels(hs, domain.SortPopularity)
	assertOrder(t, hs, "z", "a", "m")
}
