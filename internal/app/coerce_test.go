package app_test

import (
	"reflect"
	"testing"

	"hotelnow/internal/app"
)

func TestCoerceForm_HotelFields(t *testing.T) {
	form := map[string]string{
		"name":      "Hotel Sunrise",
		"price":     "1200",
		"rating":    "4.2",
		"latitude":  "18.559",
		"featured":  "on",
		"verified":  "false",
		"amenities": "Free WiFi, Parking , AC",
		"image":     "a.jpg,b.jpg",
		"ignored":   "dropped",
	}
	vals, errs := app.CoerceForm(form, app.HotelSchema)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if vals["price"] != float64(1200) || vals["rating"] != float64(4.2) {
		t.Fatalf("numbers not coerced: %v", vals)
	}
	if vals["featured"] != true || vals["verified"] != false {
		t.Fatalf("booleans not coerced: %v", vals)
	}
	if !reflect.DeepEqual(vals["amenities"], []string{"Free WiFi", "Parking", "AC"}) {
		t.Fatalf("amenities: %v", vals["amenities"])
	}
	if !reflect.DeepEqual(vals["image"], []string{"a.jpg", "b.jpg"}) {
		t.Fatalf("image: %v", vals["image"])
	}
	if _, ok := vals["ignored"]; ok {
		t.Fatal("unknown fields must be dropped")
	}
}

func TestCoerceForm_EmptyNumberIsZero(t *testing.T) {
	vals, errs := app.CoerceForm(map[string]string{"name": "X"}, app.HotelSchema)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if vals["price"] != float64(0) || vals["reviews"] != float64(0) {
		t.Fatalf("absent numbers should default to 0: %v", vals)
	}
	if !reflect.DeepEqual(vals["amenities"], []string{}) {
		t.Fatalf("absent list should default empty: %v", vals["amenities"])
	}
}

func TestCoerceForm_UnparseableNumberIsFieldError(t *testing.T) {
	_, errs := app.CoerceForm(map[string]string{"price": "cheap"}, app.HotelSchema)
	if errs["price"] != "price must be a number" {
		t.Fatalf("got %v", errs)
	}
}

func TestCoerceForm_BooleanSpellings(t *testing.T) {
	for _, v := range []string{"true", "on", "1", "yes", "TRUE"} {
		vals, _ := app.CoerceForm(map[string]string{"featured": v}, app.HotelSchema)
		if vals["featured"] != true {
			t.Fatalf("%q should read as true", v)
		}
	}
	for _, v := range []string{"", "false", "off", "0", "no"} {
		vals, _ := app.CoerceForm(map[string]string{"featured": v}, app.HotelSchema)
		if vals["featured"] != false {
			t.Fatalf("%q should read as false", v)
		}
	}
}
