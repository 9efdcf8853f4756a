package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Collection names as stored in the document database.
const (
	CollectionHotels       = "hotels"
	CollectionCities       = "cities"
	CollectionLocalities   = "localities"
	CollectionDestinations = "destinations"
)

type Hotel struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	City          string    `json:"city"`
	Locality      string    `json:"locality,omitempty"`
	Price         Number    `json:"price"`
	OriginalPrice Number    `json:"originalPrice,omitempty"`
	Rating        Number    `json:"rating"`
	Reviews       int       `json:"reviews"`
	Description   string    `json:"description"`
	Image         ImageList `json:"image"`
	Amenities     []string  `json:"amenities,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Featured      bool      `json:"featured"`
	Verified      bool      `json:"verified"`
}

type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Locality belongs to a parent city, matched case-insensitively when
// building filter options.
type Locality struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type Destination struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Img  string `json:"img"`
}

// Number tolerates the sloppy typing of documents written by older admin
// forms: JSON numbers, numeric strings, null. Anything unparseable decodes
// to 0 rather than failing the whole record.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 { return float64(n) }

// ImageList normalizes the hotel image field: legacy documents store a bare
// URL string, newer ones an array. Absent or null becomes an empty list, so
// the first element is always a safe thumbnail when the list is non-empty.
type ImageList []string

func (l *ImageList) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*l = ImageList{}
		return nil
	}
	if s[0] == '"' {
		var one string
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		if one == "" {
			*l = ImageList{}
			return nil
		}
		*l = ImageList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	if many == nil {
		many = []string{}
	}
	*l = ImageList(many)
	return nil
}
