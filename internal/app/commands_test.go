package app_test

import (
	"context"
	"errors"
	"testing"

	"hotelnow/internal/app"
	"hotelnow/internal/domain"
)

// writeStore records the last document written, for asserting the coerced
// values that reach the store.
type writeStore struct {
	fakeStore
	lastHotel domain.Hotel
	createErr error
}

func (w *writeStore) CreateHotel(ctx context.Context, h domain.Hotel) (string, error) {
	if w.createErr != nil {
		return "", w.createErr
	}
	w.lastHotel = h
	return "hotel-1", nil
}

func TestCreateHotel_CoercesBeforeWrite(t *testing.T) {
	store := &writeStore{}
	svc := app.NewAdminService(store)

	id, err := svc.CreateHotel(context.Background(), map[string]string{
		"name":      "Hotel Sunrise",
		"city":      "Pune",
		"price":     "1200",
		"rating":    "4.2",
		"reviews":   "312",
		"featured":  "on",
		"image":     "a.jpg, b.jpg",
		"amenities": "WiFi,AC",
		"latitude":  "18.559",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if id != "hotel-1" {
		t.Fatalf("id: %q", id)
	}
	h := store.lastHotel
	if h.Price.Float() != 1200 || h.Rating.Float() != 4.2 || h.Reviews != 312 {
		t.Fatalf("numbers not coerced: %+v", h)
	}
	if !h.Featured || h.Verified {
		t.Fatalf("booleans not coerced: %+v", h)
	}
	if len(h.Image) != 2 || len(h.Amenities) != 2 {
		t.Fatalf("lists not coerced: %+v", h)
	}
	if h.Latitude == nil || *h.Latitude != 18.559 {
		t.Fatalf("latitude: %+v", h.Latitude)
	}
	if h.Longitude != nil {
		t.Fatal("absent longitude should stay nil")
	}
}

func TestCreateHotel_ZeroCoordinatesAreStored(t *testing.T) {
	store := &writeStore{}
	svc := app.NewAdminService(store)

	_, err := svc.CreateHotel(context.Background(), map[string]string{
		"name":      "Equator Lodge",
		"latitude":  "0",
		"longitude": "0",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	h := store.lastHotel
	if h.Latitude == nil || *h.Latitude != 0 {
		t.Fatalf("latitude 0 must be stored: %+v", h.Latitude)
	}
	if h.Longitude == nil || *h.Longitude != 0 {
		t.Fatalf("longitude 0 must be stored: %+v", h.Longitude)
	}
}

func TestCreateHotel_EmptyCoordinateClears(t *testing.T) {
	store := &writeStore{}
	svc := app.NewAdminService(store)

	_, err := svc.CreateHotel(context.Background(), map[string]string{
		"name":      "Inland Hotel",
		"latitude":  "",
		"longitude": "  ",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if store.lastHotel.Latitude != nil || store.lastHotel.Longitude != nil {
		t.Fatalf("blank coordinate fields must stay unset: %+v", store.lastHotel)
	}
}

func TestCreateHotel_BadNumberIsValidationError(t *testing.T) {
	store := &writeStore{}
	svc := app.NewAdminService(store)

	_, err := svc.CreateHotel(context.Background(), map[string]string{
		"name":  "X",
		"price": "cheap",
	})
	var ve *app.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if ve.Fields["price"] == "" {
		t.Fatalf("missing price error: %v", ve.Fields)
	}
	if store.lastHotel.Name != "" {
		t.Fatal("nothing should reach the store on invalid input")
	}
}

func TestCreateHotel_StoreFailureIsWrapped(t *testing.T) {
	store := &writeStore{createErr: errors.New("remote 503")}
	svc := app.NewAdminService(store)

	_, err := svc.CreateHotel(context.Background(), map[string]string{"name": "X"})
	if err == nil || !errors.Is(err, store.createErr) {
		t.Fatalf("want wrapped store error, got %v", err)
	}
}

func TestUpdateHotel_CarriesID(t *testing.T) {
	store := &writeStore{}
	svc := app.NewAdminService(store)

	// Update goes through the embedded fakeStore's no-op UpdateHotel, so
	// only the coercion path is checked here.
	if err := svc.UpdateHotel(context.Background(), "h9", map[string]string{"name": "Renamed"}); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestDeleteHotel(t *testing.T) {
	svc := app.NewAdminService(&writeStore{})
	if err := svc.DeleteHotel(context.Background(), "h1"); err != nil {
		t.Fatalf("err: %v", err)
	}
}
