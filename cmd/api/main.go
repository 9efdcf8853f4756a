package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"hotelnow/internal/adapters/docstore"
	server "hotelnow/internal/adapters/http_server"
	"hotelnow/internal/adapters/observability"
	redisad "hotelnow/internal/adapters/redis"
	"hotelnow/internal/app"
	"hotelnow/internal/domain"
	"hotelnow/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// catalog store: remote document service, or in-memory when unconfigured
	var store domain.CatalogStore
	if cfg.DocstoreBaseURL != "" {
		client, err := docstore.New(cfg.DocstoreBaseURL, cfg.DocstoreKey, cfg.DocstoreRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("docstore client init failed")
		}
		store = client
		log.Info().Str("base", cfg.DocstoreBaseURL).Msg("document store client ready")
	} else {
		store = docstore.NewMemory()
	}

	views := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// deps
	catalog := app.NewCatalogService(store)
	admin := app.NewAdminService(store)
	leads := app.NewLeadService(cfg.LeadSubmitDelay, cfg.BannerTTL)
	contact := app.NewContactService(2 * time.Second)

	// http
	srv := server.New(cfg.CORSOrigins)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog: catalog,
		Admin:   admin,
		Leads:   leads,
		Contact: contact,
		Views:   views,
		ViewTTL: int(cfg.SessionTTL.Seconds()),
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
