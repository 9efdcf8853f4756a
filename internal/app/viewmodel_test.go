package app_test

import (
	"strings"
	"testing"

	"hotelnow/internal/app"
	"hotelnow/internal/domain"
)

func TestHeading_Pluralization(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "0 hotels found in pune"},
		{1, "1 hotel found in pune"},
		{2, "2 hotels found in pune"},
	}
	for _, tc := range cases {
		if got := app.Heading(tc.count, "pune"); got != tc.want {
			t.Fatalf("Heading(%d): got %q, want %q", tc.count, got, tc.want)
		}
	}
}

func TestHeading_EchoesRouteCityAsGiven(t *testing.T) {
	if got := app.Heading(3, "GOA"); got != "3 hotels found in GOA" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-03-05T00:00:00.000Z", "05-03-2024"},
		{"2024-03-05T18:30:00+05:30", "05-03-2024"},
		{"2024-03-05", "05-03-2024"},
		{"", "N/A"},
		{"not-a-date", "N/A"},
	}
	for _, tc := range cases {
		if got := app.FormatDate(tc.in); got != tc.want {
			t.Fatalf("FormatDate(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateDescription(t *testing.T) {
	short := "Cozy rooms."
	if got := app.TruncateDescription(short); got != short {
		t.Fatalf("short description changed: %q", got)
	}

	long := "A very long description of the property and its amenities"
	got := app.TruncateDescription(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != 20 {
		t.Fatalf("preview is %d runes, want 20", n)
	}

	// multi-byte text must cut on rune boundaries
	hindi := strings.Repeat("होटल ", 10)
	got = app.TruncateDescription(hindi)
	if !strings.HasSuffix(got, "...") || !strings.HasPrefix(hindi, strings.TrimSuffix(got, "...")) {
		t.Fatalf("bad multi-byte truncation: %q", got)
	}
}

func TestExpandState_ToggleIsIndependentPerHotel(t *testing.T) {
	state := app.ExpandState{}
	state.Toggle("a")
	state.Toggle("b")
	state.Toggle("b")
	if !state.Expanded("a") {
		t.Fatal("a should stay expanded")
	}
	if state.Expanded("b") {
		t.Fatal("b should be collapsed after the second toggle")
	}
	if state.Expanded("c") {
		t.Fatal("untouched hotel should default collapsed")
	}
}

func TestBuildHotelList(t *testing.T) {
	long := "Comfortable business hotel with easy highway access."
	hotels := []domain.Hotel{
		{ID: "a", Name: "Sunrise", City: "Pune", Locality: "Baner", Price: 1200,
			Description: long, Image: domain.ImageList{"1.jpg", "2.jpg"}},
		{ID: "b", Name: "Grand", City: "Pune", Locality: "Hinjewadi", Price: 2200,
			Description: long},
		{ID: "c", Name: "Resort", City: "Goa", Price: 3400, Description: long},
	}
	crit := domain.SearchCriteria{City: "pune", StartDate: "2024-03-05", EndDate: "2024-03-07", Guests: 2}
	sel := domain.FilterSelection{Prices: []string{"Under ₹1,500"}}
	expanded := app.ExpandState{"a": true}

	view := app.BuildHotelList(hotels, crit, sel, domain.SortPriceLow, expanded)

	if view.Heading != "1 hotel found in pune" {
		t.Fatalf("heading: %q", view.Heading)
	}
	if view.Count != 1 || len(view.Hotels) != 1 {
		t.Fatalf("count: %d, cards: %d", view.Count, len(view.Hotels))
	}
	if view.DateRange != "05-03-2024 - 07-03-2024" {
		t.Fatalf("date range: %q", view.DateRange)
	}
	if view.GuestsLabel != "2 guests" {
		t.Fatalf("guests label: %q", view.GuestsLabel)
	}
	if view.ActiveFilters != 1 {
		t.Fatalf("active filters: %d", view.ActiveFilters)
	}

	card := view.Hotels[0]
	if card.ID != "a" {
		t.Fatalf("wrong card: %+v", card)
	}
	if !card.Expanded || card.Description != long {
		t.Fatalf("expanded card must carry the full description: %+v", card)
	}
	if card.PhotoLabel != "2 photos" {
		t.Fatalf("photo label: %q", card.PhotoLabel)
	}
	if card.TaxNote != "+ ₹250 GST" {
		t.Fatalf("tax note: %q", card.TaxNote)
	}
}

func TestBuildHotelList_CollapsedCardTruncates(t *testing.T) {
	long := "Comfortable business hotel with easy highway access."
	hotels := []domain.Hotel{{ID: "a", City: "Pune", Price: 1000, Description: long}}
	crit := domain.SearchCriteria{City: "Pune", Guests: 1}

	view := app.BuildHotelList(hotels, crit, domain.FilterSelection{}, domain.SortPopularity, app.ExpandState{})
	card := view.Hotels[0]
	if card.Expanded {
		t.Fatal("card should start collapsed")
	}
	if card.Description != app.TruncateDescription(long) {
		t.Fatalf("collapsed description: %q", card.Description)
	}
	if card.Images == nil || len(card.Images) != 0 {
		t.Fatalf("missing image field must render as empty list, got %#v", card.Images)
	}
	if card.PhotoLabel != "" {
		t.Fatalf("no photos, no label: %q", card.PhotoLabel)
	}
	if view.DateRange != "N/A - N/A" {
		t.Fatalf("date range without dates: %q", view.DateRange)
	}
	if view.GuestsLabel != "1 guest" {
		t.Fatalf("guests label: %q", view.GuestsLabel)
	}
}
