package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotelnow/internal/domain"
)

// ErrStale marks a fetch whose view moved to a different city or record
// before the fetch resolved. Callers discard the result silently.
var ErrStale = errors.New("stale fetch discarded")

// CatalogService owns all reads. Every call re-fetches from the document
// store; concurrent identical fetches are collapsed with singleflight, but
// nothing is cached between calls.
type CatalogService struct {
	store domain.CatalogStore
	group singleflight.Group
	views viewTracker
}

func NewCatalogService(store domain.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// HotelsForView fetches hotels for a city on behalf of a view instance.
// The fetch is tagged with the view's target key; if the same view asks for
// a different city before this fetch resolves, the result is dropped with
// ErrStale so the view never renders data it no longer represents.
func (s *CatalogService) HotelsForView(ctx context.Context, viewID, city string) ([]domain.Hotel, error) {
	gen := s.views.begin(viewID, city)

	v, err, _ := s.group.Do("hotels:"+city, func() (any, error) {
		return s.store.ListHotelsByCity(ctx, city)
	})
	if err != nil {
		return nil, err
	}
	if !s.views.current(viewID, gen) {
		log.Debug().Str("view", viewID).Str("city", city).Msg("dropping stale hotel fetch")
		return nil, ErrStale
	}
	return v.([]domain.Hotel), nil
}

// ListHotels returns the whole collection, the fetch-all variant the
// unscoped list views use.
func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	v, err, _ := s.group.Do("hotels:*", func() (any, error) {
		return s.store.ListHotels(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Hotel), nil
}

// GetHotelForView is the detail-view variant of the stale guard: the fetch
// is tagged with the record id, and discarded if the view navigated away
// before it resolved.
func (s *CatalogService) GetHotelForView(ctx context.Context, viewID, id string) (domain.Hotel, error) {
	gen := s.views.begin(viewID, "hotel:"+id)
	h, err := s.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if !s.views.current(viewID, gen) {
		log.Debug().Str("view", viewID).Str("id", id).Msg("dropping stale hotel fetch")
		return domain.Hotel{}, ErrStale
	}
	return h, nil
}

func (s *CatalogService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := s.store.GetHotel(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, fmt.Errorf("get hotel %s: %w", id, err)
	}
	return h, nil
}

func (s *CatalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	v, err, _ := s.group.Do("cities", func() (any, error) {
		return s.store.ListCities(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.City), nil
}

func (s *CatalogService) ListLocalities(ctx context.Context) ([]domain.Locality, error) {
	v, err, _ := s.group.Do("localities", func() (any, error) {
		return s.store.ListLocalities(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Locality), nil
}

// LocalitiesForCity fetches the full collection and narrows it to the
// active city's localities (case-insensitive parent match).
func (s *CatalogService) LocalitiesForCity(ctx context.Context, city string) ([]domain.Locality, error) {
	all, err := s.ListLocalities(ctx)
	if err != nil {
		return nil, err
	}
	return LocalityOptions(all, city), nil
}

func (s *CatalogService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	v, err, _ := s.group.Do("destinations", func() (any, error) {
		return s.store.ListDestinations(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Destination), nil
}

// viewTracker records, per view instance, the key of the most recent fetch
// and a generation counter. A fetch result is applied only when its
// generation is still the view's latest.
type viewTracker struct {
	mu    sync.Mutex
	state map[string]viewGen
}

type viewGen struct {
	key string
	gen uint64
}

func (t *viewTracker) begin(viewID, key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		t.state = make(map[string]viewGen)
	}
	cur := t.state[viewID]
	cur.gen++
	cur.key = key
	t.state[viewID] = cur
	return cur.gen
}

func (t *viewTracker) current(viewID string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state[viewID].gen == gen
}
