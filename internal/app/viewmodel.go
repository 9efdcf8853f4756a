package app

import (
	"fmt"
	"time"

	"hotelnow/internal/domain"
)

const (
	// descPreviewRunes is how much of a description the collapsed card shows.
	descPreviewRunes = 20
	// gstPerNight is the flat tax line printed under every price.
	gstPerNight = 250
)

// ExpandState holds the independent per-record expanded flags, keyed by
// hotel id. It round-trips through the view-state store as a plain map.
type ExpandState map[string]bool

func (e ExpandState) Toggle(hotelID string) {
	if e[hotelID] {
		delete(e, hotelID)
		return
	}
	e[hotelID] = true
}

func (e ExpandState) Expanded(hotelID string) bool { return e[hotelID] }

// HotelCard is one rendered list entry.
type HotelCard struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	City          string   `json:"city"`
	Locality      string   `json:"locality,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	TaxNote       string   `json:"taxNote"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Images        []string `json:"images"`
	PhotoLabel    string   `json:"photoLabel,omitempty"`
	Description   string   `json:"description"`
	Expanded      bool     `json:"expanded"`
}

// HotelListView is the display-ready result the list page consumes.
type HotelListView struct {
	Heading       string      `json:"heading"`
	Count         int         `json:"count"`
	DateRange     string      `json:"dateRange"`
	GuestsLabel   string      `json:"guestsLabel"`
	ActiveFilters int         `json:"activeFilters"`
	Sort          string      `json:"sort"`
	Hotels        []HotelCard `json:"hotels"`
}

// BuildHotelList runs the whole pipeline: filter, stable sort, then the
// display strings. Expansion flags come from the caller's view state.
func BuildHotelList(hotels []domain.Hotel, crit domain.SearchCriteria, sel domain.FilterSelection, key domain.SortKey, expanded ExpandState) HotelListView {
	matched := FilterHotels(hotels, crit.City, sel)
	SortHotels(matched, key)

	cards := make([]HotelCard, 0, len(matched))
	for _, h := range matched {
		cards = append(cards, buildCard(h, expanded.Expanded(h.ID)))
	}

	return HotelListView{
		Heading:       Heading(len(matched), crit.City),
		Count:         len(matched),
		DateRange:     fmt.Sprintf("%s - %s", FormatDate(crit.StartDate), FormatDate(crit.EndDate)),
		GuestsLabel:   GuestsLabel(crit.Guests),
		ActiveFilters: sel.ActiveCount(),
		Sort:          string(key),
		Hotels:        cards,
	}
}

func buildCard(h domain.Hotel, expanded bool) HotelCard {
	images := h.Image
	if images == nil {
		images = domain.ImageList{}
	}
	desc := h.Description
	if !expanded {
		desc = TruncateDescription(desc)
	}
	card := HotelCard{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		City:          h.City,
		Locality:      h.Locality,
		Price:         h.Price.Float(),
		OriginalPrice: h.OriginalPrice.Float(),
		TaxNote:       fmt.Sprintf("+ ₹%d GST", gstPerNight),
		Rating:        h.Rating.Float(),
		Reviews:       h.Reviews,
		Images:        images,
		Description:   desc,
		Expanded:      expanded,
	}
	if n := len(images); n > 0 {
		card.PhotoLabel = fmt.Sprintf("%d photo%s", n, plural(n))
	}
	return card
}

// Heading pluralizes on the exact count: 1 is singular, everything else
// (zero included) is plural. The city echoes the route segment as given.
func Heading(count int, city string) string {
	return fmt.Sprintf("%d hotel%s found in %s", count, plural(count), city)
}

func GuestsLabel(guests int) string {
	if guests < 1 {
		guests = 1
	}
	return fmt.Sprintf("%d guest%s", guests, plural(guests))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// FormatDate renders an ISO-8601 timestamp as zero-padded dd-mm-yyyy, or
// "N/A" when the navigation state carried no date.
func FormatDate(iso string) string {
	if iso == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		// date-only form also appears in stored criteria
		t, err = time.Parse("2006-01-02", iso)
		if err != nil {
			return "N/A"
		}
	}
	return t.Format("02-01-2006")
}

// TruncateDescription cuts the collapsed preview at a fixed rune count with
// a trailing ellipsis. Short descriptions pass through untouched.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descPreviewRunes {
		return s
	}
	return string(runes[:descPreviewRunes]) + "..."
}
