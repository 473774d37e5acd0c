package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/campuseats/ordering-gateway/api/controllers"
	"github.com/campuseats/ordering-gateway/api/routes"
	"github.com/campuseats/ordering-gateway/internal/auth"
	"github.com/campuseats/ordering-gateway/internal/cart"
	"github.com/campuseats/ordering-gateway/internal/catalog"
	"github.com/campuseats/ordering-gateway/internal/checkout"
	"github.com/campuseats/ordering-gateway/internal/inventory"
	"github.com/campuseats/ordering-gateway/internal/media"
	"github.com/campuseats/ordering-gateway/internal/orders"
	"github.com/campuseats/ordering-gateway/internal/restaurants"
	"github.com/campuseats/ordering-gateway/internal/session"
	"github.com/campuseats/ordering-gateway/internal/state"
	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/db"
	"github.com/campuseats/ordering-gateway/pkg/logger"
	"github.com/campuseats/ordering-gateway/pkg/metrics"
	"github.com/campuseats/ordering-gateway/pkg/redis"
	"github.com/campuseats/ordering-gateway/pkg/storage/blob"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	gm := metrics.NewGatewayMetrics(registry)

	var closers []io.Closer

	backend, statePinger, stateClosers, err := buildStateBackend(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap session state", err)
		os.Exit(1)
	}
	closers = append(closers, stateClosers...)

	upstreamClient, err := upstream.NewClient(cfg.Upstream, logg, gm)
	if err != nil {
		logg.Error(context.Background(), "failed to build upstream client", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart store", err)
		os.Exit(1)
	}
	cartSvc, err := cart.NewService(cartStore, gm, cfg.Cart.DefaultStockLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart service", err)
		os.Exit(1)
	}

	tokens, err := session.NewTokens(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to build token store", err)
		os.Exit(1)
	}
	guard, err := session.NewGuard(tokens, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build session guard", err)
		os.Exit(1)
	}

	authSvc, err := auth.NewService(upstreamClient, tokens, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build auth service", err)
		os.Exit(1)
	}

	catalogSvc, err := catalog.NewService(upstreamClient, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog service", err)
		os.Exit(1)
	}
	restaurantsSvc, err := restaurants.NewService(upstreamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build restaurants service", err)
		os.Exit(1)
	}
	ordersSvc, err := orders.NewService(upstreamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build orders service", err)
		os.Exit(1)
	}

	validator, err := inventory.NewValidator(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build stock validator", err)
		os.Exit(1)
	}
	submitter, err := checkout.NewUpstreamSubmitter(upstreamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build order submitter", err)
		os.Exit(1)
	}
	orchestrator, err := checkout.NewOrchestrator(cartStore, validator, submitter, backend, catalogSvc, logg, gm, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout orchestrator", err)
		os.Exit(1)
	}

	var blobClient *blob.Client
	var blobPinger controllers.Pinger
	if cfg.Blob.BaseURL != "" {
		blobClient, err = blob.NewClient(cfg.Blob, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to build blob client", err)
			os.Exit(1)
		}
		blobPinger = blobClient
	} else {
		logg.Warn(context.Background(), "blob store not configured, media uploads disabled")
	}
	mediaSvc := media.NewService(blobClient, logg)

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Registry:    registry,
		State:       backend,
		StatePinger: statePinger,
		Upstream:    upstreamClient,
		Blob:        blobPinger,
		Guard:       guard,
		Auth:        authSvc,
		Cart:        cartSvc,
		Checkout:    orchestrator,
		Catalog:     catalogSvc,
		Restaurants: restaurantsSvc,
		Orders:      ordersSvc,
		Media:       mediaSvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting gateway server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "gateway server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	var closeErr error
	for _, c := range closers {
		closeErr = multierr.Append(closeErr, c.Close())
	}
	if closeErr != nil {
		logg.Error(ctx, "error closing backends", closeErr)
		os.Exit(1)
	}
}

// buildStateBackend picks the session-state store: Redis when configured,
// otherwise the embedded SQLite file.
func buildStateBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (state.Store, controllers.Pinger, []io.Closer, error) {
	if cfg.Store.UseSQLite {
		dbClient, err := db.New(ctx, cfg.Store, logg)
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := state.NewSQLiteStore(dbClient.DB())
		if err != nil {
			return nil, nil, nil, multierr.Append(err, dbClient.Close())
		}
		return store, store, []io.Closer{dbClient}, nil
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := state.NewRedisStore(redisClient, cfg.Session.TTL)
	if err != nil {
		return nil, nil, nil, multierr.Append(err, redisClient.Close())
	}
	return store, store, []io.Closer{redisClient}, nil
}
