package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/client"
	"github.com/sidereusnuntius/hermes/internal/config"
	"github.com/sidereusnuntius/hermes/internal/crosspost"
	db "github.com/sidereusnuntius/hermes/internal/db/impl"
	"github.com/sidereusnuntius/hermes/internal/dispatch"
	"github.com/sidereusnuntius/hermes/internal/initialization"
	"github.com/sidereusnuntius/hermes/internal/maintenance"
	"github.com/sidereusnuntius/hermes/internal/queue"
	"github.com/sidereusnuntius/hermes/internal/web"
	"github.com/sidereusnuntius/hermes/internal/wellknown"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	config, err := config.ReadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := initialization.OpenDB(config.DbUrl)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	defer d.Close()
	log.Info().Msg("database connection established")

	if os.Getenv("SETUP") != "" {
		if err = initialization.SetupDB(d, config.MigrationsFolder, config.DbUrl); err != nil {
			log.Fatal().Err(err).Msg("database setup failed")
		}
	}

	bl, err := initialization.InitQueue(&config, d)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to install the task queue")
	}

	dd := db.New(config, d)
	httpClient := client.New(&http.Client{}, config.UserAgent, config.RemoteRatePerSec, config.RemoteBurst)

	crossPoster := crosspost.NewRegistry()
	for label, endpoint := range config.CrossPost {
		u, err := url.Parse(endpoint)
		if err != nil {
			log.Fatal().Err(err).Str("service", label).Msg("invalid cross-post endpoint")
		}
		crossPoster.Register(crosspost.NewWebhook(label, u, config.Url, httpClient))
	}

	factory := dispatch.NewFactory(dispatch.Deps{
		Resolver:    dd,
		Notifier:    dd,
		Transport:   httpClient,
		CrossPoster: crossPoster,
	}, &config)

	q := queue.New(bl)
	q.Start(ctx, queue.NewProcessor(dd, factory, q, queue.NewRetryPolicy(&config)))

	pruner := maintenance.NewPruner(dd, &config)
	if err = pruner.Start(ctx, config.PruneSchedule); err != nil {
		log.Fatal().Err(err).Msg("invalid prune schedule")
	}

	handler := web.New(&config, dd, queue.NewDeferrer(q))
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if config.Debug {
		router.Use(middleware.Logger)
	}
	handler.Mount(router)
	wellknown.Mount(dd, config.Domain, router)

	s := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: router,
	}

	go func() {
		log.Info().Uint16("port", config.Port).Msg("started server")
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	q.Stop(shutdownCtx)
	pruner.Stop()
}
