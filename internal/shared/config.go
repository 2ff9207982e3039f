package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPAddr        string
	MetricsAddr     string
	PublicURL       string
	AssetsDir       string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	HeroInterval    time.Duration
	RateLimitRPS    int
	ShutdownTimeout time.Duration
	AssetWorkers    int
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset or
// malformed values.
func FromEnv(getenv func(string) string) Config {
	env := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	atoi := func(k string, def int) int {
		if v := getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer config value")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     getenv("METRICS_ADDR"),
		PublicURL:       getenv("PUBLIC_URL"),
		AssetsDir:       env("ASSETS_DIR", "./public"),
		RedisAddr:       getenv("REDIS_ADDR"),
		RedisPass:       getenv("REDIS_PASSWORD"),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		HeroInterval:    time.Duration(atoi("HERO_INTERVAL_MS", 5000)) * time.Millisecond,
		RateLimitRPS:    atoi("RATE_LIMIT_RPS", 20),
		ShutdownTimeout: time.Duration(atoi("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		AssetWorkers:    atoi("ASSET_WORKERS", 8),
	}
	if c.HeroInterval <= 0 {
		log.Warn().Dur("interval", c.HeroInterval).Msg("HERO_INTERVAL_MS must be positive; using 5s")
		c.HeroInterval = 5 * time.Second
	}
	if c.AssetWorkers <= 0 {
		c.AssetWorkers = 1
	}
	return c
}
