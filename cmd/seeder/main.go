package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotelnow/internal/adapters/docstore"
	"hotelnow/internal/adapters/observability"
	"hotelnow/internal/domain"
	"hotelnow/internal/shared"
)

// seedFile is the fixture layout: one array per collection.
type seedFile struct {
	Hotels       []domain.Hotel       `json:"hotels"`
	Cities       []domain.City        `json:"cities"`
	Localities   []domain.Locality    `json:"localities"`
	Destinations []domain.Destination `json:"destinations"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.DocstoreBaseURL).
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	if cfg.DocstoreBaseURL == "" {
		log.Fatal().Msg("DOCSTORE_BASE_URL is required for seeding")
	}

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	store, err := docstore.New(cfg.DocstoreBaseURL, cfg.DocstoreKey, cfg.DocstoreRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize docstore client")
	}

	// small reference collections go in sequentially; hotels through the pool
	for _, c := range seed.Cities {
		if _, err := store.CreateCity(ctx, c); err != nil {
			log.Warn().Str("name", c.Name).Err(err).Msg("seed city failed")
		}
	}
	for _, l := range seed.Localities {
		if _, err := store.CreateLocality(ctx, l); err != nil {
			log.Warn().Str("name", l.Name).Err(err).Msg("seed locality failed")
		}
	}
	for _, d := range seed.Destinations {
		if _, err := store.CreateDestination(ctx, d); err != nil {
			log.Warn().Str("name", d.Name).Err(err).Msg("seed destination failed")
		}
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, failed int

	for _, h := range seed.Hotels {
		h := h

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(int64(1))

			id, err := store.CreateHotel(ctx, h)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				log.Warn().Str("name", h.Name).Err(err).Msg("seed hotel failed")
				return
			}
			ok++
			log.Info().Str("id", id).Str("name", h.Name).Msg("seed hotel ok")
		}(h)
	}

	wg.Wait()
	log.Info().Int("ok", ok).Int("failed", failed).Msg("seeding completed")
}
