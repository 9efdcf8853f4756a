package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// CatalogStore is the document-database boundary. Reads return whole
// collections; the only server-side filter the service offers is the city
// equality clause on hotels. Writes are admin-only.
type CatalogStore interface {
	// Read paths
	ListHotels(ctx context.Context) ([]Hotel, error)
	ListHotelsByCity(ctx context.Context, city string) ([]Hotel, error)
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListCities(ctx context.Context) ([]City, error)
	ListLocalities(ctx context.Context) ([]Locality, error)
	ListDestinations(ctx context.Context) ([]Destination, error)

	// Write paths (admin CRUD). Create returns the store-assigned id.
	CreateHotel(ctx context.Context, h Hotel) (string, error)
	UpdateHotel(ctx context.Context, h Hotel) error
	DeleteHotel(ctx context.Context, id string) error
	CreateCity(ctx context.Context, c City) (string, error)
	DeleteCity(ctx context.Context, id string) error
	CreateLocality(ctx context.Context, l Locality) (string, error)
	UpdateLocality(ctx context.Context, l Locality) error
	DeleteLocality(ctx context.Context, id string) error
	CreateDestination(ctx context.Context, d Destination) (string, error)
	UpdateDestination(ctx context.Context, d Destination) error
	DeleteDestination(ctx context.Context, id string) error
}

// ViewStateStore keeps the ephemeral per-view state (filter selections and
// expanded-description flags). Records never go through it.
type ViewStateStore interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
