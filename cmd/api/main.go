package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gateway/internal/http/handlers"
	httpapi "gateway/internal/http/httpapi"
	"gateway/internal/infra"
	"gateway/internal/infra/geoip"
	"gateway/internal/providers/heygen"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fatal(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogFile)

	client, err := heygen.NewClientFromConfig(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure heygen client")
	}

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	app := handlers.NewApp(
		heygen.NewCatalog(client),
		heygen.NewJobs(client),
		heygen.NewPoller(client),
		heygen.NewSessions(client),
		logger,
	)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   resolver.Lookup(),
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("upstream", cfg.HeyGenBaseURL).Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	// In-flight upstream calls may run up to the upstream timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// fatal reports a startup error before the logger exists.
func fatal(err error) {
	logger := infra.NewLogger("production", "")
	logger.Fatal().Err(err).Msg("invalid configuration")
}
