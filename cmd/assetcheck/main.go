package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"hima_estates/internal/adapters/observability"
	"hima_estates/internal/app"
	"hima_estates/internal/catalog"
	"hima_estates/internal/shared"
)

func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// paths are checked unresolved: PUBLIC_URL only changes where they are served
	r := catalog.Resolver{}
	cat, err := catalog.Default(r)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid catalog")
	}
	paths := app.AssetPaths(cat, app.Site{HeroImages: catalog.HeroImages(r), AboutImage: catalog.AboutImage(r)})

	log.Info().
		Str("dir", cfg.AssetsDir).
		Int("workers", cfg.AssetWorkers).
		Int("assets", len(paths)).
		Msg("asset check starting")

	missing, err := app.MissingAssets(ctx, cfg.AssetsDir, paths, cfg.AssetWorkers)
	if err != nil {
		log.Fatal().Err(err).Msg("asset check failed")
	}
	for _, p := range missing {
		log.Warn().Str("path", p).Msg("missing asset")
	}
	if len(missing) > 0 {
		log.Error().Int("missing", len(missing)).Msg("asset check completed with missing files")
		os.Exit(1)
	}
	log.Info().Msg("asset check completed")
}
