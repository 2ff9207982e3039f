package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "hima_estates/internal/adapters/http_server"
	"hima_estates/internal/adapters/observability"
	redisad "hima_estates/internal/adapters/redis"
	"hima_estates/internal/app"
	"hima_estates/internal/catalog"
	"hima_estates/internal/domain"
	"hima_estates/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := catalog.Resolver{Base: cfg.PublicURL}
	cat, err := catalog.Default(res)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid catalog")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; pages render uncached until it recovers")
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
		}
		cancel()
		cache = rc
	}

	pages := app.NewPageService(cat, cache, cfg.CacheTTL, app.Site{
		HeroImages: catalog.HeroImages(res),
		AboutImage: catalog.AboutImage(res),
	})

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Pages:        pages,
		HeroInterval: cfg.HeroInterval,
		RateLimitRPS: cfg.RateLimitRPS,
	})
	srv.MountAssets(cfg.PublicURL, cfg.AssetsDir)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
		// hero streams end when the signal context does; Shutdown alone waits for them
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Int("properties", cat.Len()).Msg("site listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if metricsSrv != nil {
			if err := metricsSrv.Shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("metrics server shutdown failed")
			}
		}
		return httpSrv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("server stopped")
}
