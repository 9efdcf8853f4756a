package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	DocstoreBaseURL string
	DocstoreKey     string
	DocstoreRPS     int
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	SessionTTL      time.Duration
	LeadSubmitDelay time.Duration
	BannerTTL       time.Duration
	SeedFile        string
	SeedWorkers     int
	CORSOrigins     []string
}

func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		DocstoreBaseURL: env("DOCSTORE_BASE_URL", ""),
		DocstoreKey:     env("DOCSTORE_API_KEY", ""),
		DocstoreRPS:     atoi("DOCSTORE_RPS", 10),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisDB:         atoi("REDIS_DB", 0),
		RedisPass:       env("REDIS_PASSWORD", ""),
		SessionTTL:      time.Duration(atoi("SESSION_TTL_SECONDS", 86400)) * time.Second,
		LeadSubmitDelay: time.Duration(atoi("LEAD_SUBMIT_DELAY_MS", 0)) * time.Millisecond,
		BannerTTL:       time.Duration(atoi("BANNER_TTL_MS", 3500)) * time.Millisecond,
		SeedFile:        env("SEED_FILE", "seed.json"),
		SeedWorkers:     atoi("SEED_WORKERS", 8),
		CORSOrigins:     splitOrigins(env("CORS_ORIGINS", "")),
	}
	if c.DocstoreBaseURL == "" {
		log.Warn().Msg("DOCSTORE_BASE_URL is empty, falling back to the in-memory store")
	}
	return c
}

func splitOrigins(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
