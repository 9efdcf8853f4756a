package docstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hotelnow/internal/domain"
)

// Memory is an in-memory CatalogStore. It backs tests and the dev fallback
// when no document-store URL is configured. IDs are assigned the way the
// managed service would, opaque and unique.
type Memory struct {
	mu           sync.RWMutex
	hotels       map[string]domain.Hotel
	cities       map[string]domain.City
	localities   map[string]domain.Locality
	destinations map[string]domain.Destination
	order        []string // hotel insertion order, to keep list reads deterministic
}

func NewMemory() *Memory {
	return &Memory{
		hotels:       make(map[string]domain.Hotel),
		cities:       make(map[string]domain.City),
		localities:   make(map[string]domain.Locality),
		destinations: make(map[string]domain.Destination),
	}
}

func (m *Memory) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Hotel, 0, len(m.hotels))
	for _, id := range m.order {
		if h, ok := m.hotels[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *Memory) ListHotelsByCity(ctx context.Context, city string) ([]domain.Hotel, error) {
	all, _ := m.ListHotels(ctx)
	out := make([]domain.Hotel, 0, len(all))
	for _, h := range all {
		if strings.EqualFold(h.City, city) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *Memory) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (m *Memory) ListCities(ctx context.Context) ([]domain.City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.City, 0, len(m.cities))
	for _, c := range m.cities {
		out = append(out, c)
	}
	return out, nil
}

func (m *Memory) ListLocalities(ctx context.Context) ([]domain.Locality, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Locality, 0, len(m.localities))
	for _, l := range m.localities {
		out = append(out, l)
	}
	return out, nil
}

func (m *Memory) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Destination, 0, len(m.destinations))
	for _, d := range m.destinations {
		out = append(out, d)
	}
	return out, nil
}

func (m *Memory) CreateHotel(ctx context.Context, h domain.Hotel) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.ID = uuid.NewString()
	m.hotels[h.ID] = h
	m.order = append(m.order, h.ID)
	return h.ID, nil
}

func (m *Memory) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hotels[h.ID]; !ok {
		return domain.ErrNotFound
	}
	m.hotels[h.ID] = h
	return nil
}

func (m *Memory) DeleteHotel(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.hotels, id)
	return nil
}

func (m *Memory) CreateCity(ctx context.Context, c domain.City) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	m.cities[c.ID] = c
	return c.ID, nil
}

func (m *Memory) DeleteCity(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cities[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.cities, id)
	return nil
}

func (m *Memory) CreateLocality(ctx context.Context, l domain.Locality) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = uuid.NewString()
	m.localities[l.ID] = l
	return l.ID, nil
}

func (m *Memory) UpdateLocality(ctx context.Context, l domain.Locality) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.localities[l.ID]; !ok {
		return domain.ErrNotFound
	}
	m.localities[l.ID] = l
	return nil
}

func (m *Memory) DeleteLocality(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.localities[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.localities, id)
	return nil
}

func (m *Memory) CreateDestination(ctx context.Context, d domain.Destination) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.NewString()
	m.destinations[d.ID] = d
	return d.ID, nil
}

func (m *Memory) UpdateDestination(ctx context.Context, d domain.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.destinations[d.ID]; !ok {
		return domain.ErrNotFound
	}
	m.destinations[d.ID] = d
	return nil
}

func (m *Memory) DeleteDestination(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.destinations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.destinations, id)
	return nil
}
