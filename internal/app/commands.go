package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotelnow/internal/domain"
)

// ValidationError carries the per-field messages from a failed coercion so
// the form can show them inline and keep its values.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid form input (%d fields)", len(e.Fields))
}

// AdminService is the write side: thin CRUD over the document store, with
// the coercion pass applied before every create/update.
type AdminService struct {
	store domain.CatalogStore
}

func NewAdminService(store domain.CatalogStore) *AdminService {
	return &AdminService{store: store}
}

func hotelFromForm(form map[string]string) (domain.Hotel, error) {
	vals, errs := CoerceForm(form, HotelSchema)
	if len(errs) > 0 {
		return domain.Hotel{}, &ValidationError{Fields: errs}
	}
	h := domain.Hotel{
		Name:          str(vals, "name"),
		Location:      str(vals, "location"),
		City:          str(vals, "city"),
		Locality:      str(vals, "locality"),
		Price:         domain.Number(num(vals, "price")),
		OriginalPrice: domain.Number(num(vals, "originalPrice")),
		Rating:        domain.Number(num(vals, "rating")),
		Reviews:       int(num(vals, "reviews")),
		Description:   str(vals, "description"),
		Image:         domain.ImageList(list(vals, "image")),
		Amenities:     list(vals, "amenities"),
		Featured:      boolean(vals, "featured"),
		Verified:      boolean(vals, "verified"),
	}
	// presence in the form decides, so 0 is a storable coordinate and an
	// empty field clears one
	if v, ok := form["latitude"]; ok && strings.TrimSpace(v) != "" {
		lat := num(vals, "latitude")
		h.Latitude = &lat
	}
	if v, ok := form["longitude"]; ok && strings.TrimSpace(v) != "" {
		lon := num(vals, "longitude")
		h.Longitude = &lon
	}
	return h, nil
}

func (s *AdminService) CreateHotel(ctx context.Context, form map[string]string) (string, error) {
	h, err := hotelFromForm(form)
	if err != nil {
		return "", err
	}
	id, err := s.store.CreateHotel(ctx, h)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	log.Info().Str("id", id).Str("city", h.City).Msg("hotel created")
	return id, nil
}

func (s *AdminService) UpdateHotel(ctx context.Context, id string, form map[string]string) error {
	h, err := hotelFromForm(form)
	if err != nil {
		return err
	}
	h.ID = id
	if err := s.store.UpdateHotel(ctx, h); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

func (s *AdminService) DeleteHotel(ctx context.Context, id string) error {
	if err := s.store.DeleteHotel(ctx, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func (s *AdminService) CreateCity(ctx context.Context, form map[string]string) (string, error) {
	vals, _ := CoerceForm(form, CitySchema)
	id, err := s.store.CreateCity(ctx, domain.City{Name: str(vals, "name")})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return id, nil
}

func (s *AdminService) DeleteCity(ctx context.Context, id string) error {
	if err := s.store.DeleteCity(ctx, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func (s *AdminService) CreateLocality(ctx context.Context, form map[string]string) (string, error) {
	vals, _ := CoerceForm(form, LocalitySchema)
	l := domain.Locality{Name: str(vals, "name"), City: str(vals, "city")}
	id, err := s.store.CreateLocality(ctx, l)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return id, nil
}

func (s *AdminService) UpdateLocality(ctx context.Context, id string, form map[string]string) error {
	vals, _ := CoerceForm(form, LocalitySchema)
	l := domain.Locality{ID: id, Name: str(vals, "name"), City: str(vals, "city")}
	if err := s.store.UpdateLocality(ctx, l); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

func (s *AdminService) DeleteLocality(ctx context.Context, id string) error {
	if err := s.store.DeleteLocality(ctx, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func (s *AdminService) CreateDestination(ctx context.Context, form map[string]string) (string, error) {
	vals, _ := CoerceForm(form, DestinationSchema)
	d := domain.Destination{Name: str(vals, "name"), Img: str(vals, "img")}
	id, err := s.store.CreateDestination(ctx, d)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return id, nil
}

func (s *AdminService) UpdateDestination(ctx context.Context, id string, form map[string]string) error {
	vals, _ := CoerceForm(form, DestinationSchema)
	d := domain.Destination{ID: id, Name: str(vals, "name"), Img: str(vals, "img")}
	if err := s.store.UpdateDestination(ctx, d); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

func (s *AdminService) DeleteDestination(ctx context.Context, id string) error {
	if err := s.store.DeleteDestination(ctx, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
