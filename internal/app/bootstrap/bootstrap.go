package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	listingservice "pixmart/contexts/catalog/listing-service"
	listingpostgres "pixmart/contexts/catalog/listing-service/adapters/postgres"
	downloadservice "pixmart/contexts/commerce/download-service"
	downloadpostgres "pixmart/contexts/commerce/download-service/adapters/postgres"
	downloadworkers "pixmart/contexts/commerce/download-service/application/workers"
	orderservice "pixmart/contexts/commerce/order-service"
	orderpostgres "pixmart/contexts/commerce/order-service/adapters/postgres"
	reviewservice "pixmart/contexts/community-experience/review-service"
	reviewpostgres "pixmart/contexts/community-experience/review-service/adapters/postgres"
	accountservice "pixmart/contexts/identity-access/account-service"
	accountpostgres "pixmart/contexts/identity-access/account-service/adapters/postgres"
	accountsecurity "pixmart/contexts/identity-access/account-service/adapters/security"
	"pixmart/internal/platform/config"
	"pixmart/internal/platform/db"
	"pixmart/internal/platform/httpserver"
	"pixmart/internal/platform/messaging"
	"pixmart/internal/platform/token"
	"pixmart/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	backfill     downloadworkers.EntitlementBackfill
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	accountsModule := accountservice.NewModule(accountservice.Dependencies{
		Repository: accountpostgres.NewRepository(pg.DB, logger),
		Hasher:     accountsecurity.BcryptHasher{},
		Tokens:     token.Issuer{TTL: cfg.TokenTTL},
		Clock:      accountpostgres.SystemClock{},
		IDGen:      accountpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	catalogModule := listingservice.NewModule(listingservice.Dependencies{
		Repository: listingpostgres.NewRepository(pg.DB, logger),
		Clock:      listingpostgres.SystemClock{},
		IDGen:      listingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	orderRepo := orderpostgres.NewRepository(pg.DB, logger)
	ordersModule := orderservice.NewModule(orderservice.Dependencies{
		Repository: orderRepo,
		Cart:       orderpostgres.NewCartRepository(pg.DB),
		Listings:   catalogForOrders{listings: catalogModule.Service},
		Publisher:  bus,
		Clock:      orderpostgres.SystemClock{},
		IDGen:      orderpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	downloadRepo := downloadpostgres.NewRepository(pg.DB, logger)
	downloadsModule := downloadservice.NewModule(downloadservice.Dependencies{
		Repository: downloadRepo,
		Favorites:  downloadRepo,
		Listings:   catalogForDownloads{listings: catalogModule.Service},
		Purchases:  ordersForDownloads{orders: orderRepo},
		Clock:      downloadpostgres.SystemClock{},
		Logger:     logger,
	})

	reviewsModule := reviewservice.NewModule(reviewservice.Dependencies{
		Repository: reviewpostgres.NewRepository(pg.DB, logger),
		Listings:   catalogForReviews{listings: catalogModule.Service},
		Clock:      reviewpostgres.SystemClock{},
		IDGen:      reviewpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	if cfg.EnableEntitlementProjection {
		projector := downloadsModule.Projector
		bus.Subscribe(events.TopicOrderFulfillable, func(ctx context.Context, event events.Envelope) {
			_ = projector.Handle(ctx, event)
		})
	}

	server := httpserver.New(
		accountsModule,
		catalogModule,
		ordersModule,
		downloadsModule,
		reviewsModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	catalogModule := listingservice.NewModule(listingservice.Dependencies{
		Repository: listingpostgres.NewRepository(pg.DB, logger),
		Clock:      listingpostgres.SystemClock{},
		IDGen:      listingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	orderRepo := orderpostgres.NewRepository(pg.DB, logger)
	downloadRepo := downloadpostgres.NewRepository(pg.DB, logger)
	downloadsModule := downloadservice.NewModule(downloadservice.Dependencies{
		Repository: downloadRepo,
		Favorites:  downloadRepo,
		Listings:   catalogForDownloads{listings: catalogModule.Service},
		Purchases:  ordersForDownloads{orders: orderRepo},
		Clock:      downloadpostgres.SystemClock{},
		Logger:     logger,
	})

	return &WorkerApp{
		postgres: pg,
		backfill: downloadworkers.EntitlementBackfill{
			Orders: fulfillableOrderSource{orders: orderRepo},
			Grants: downloadsModule.Service,
			Clock:  downloadpostgres.SystemClock{},
			Window: 24 * time.Hour,
			Logger: logger,
		},
		pollInterval: 30 * time.Second,
		logger:       logger,
	}, nil
}

// NewInMemoryServer wires every module against in-memory stores. Used by
// tests and local development without postgres.
func NewInMemoryServer(logger *slog.Logger) *httpserver.Server {
	if logger == nil {
		logger = slog.Default()
	}

	bus := messaging.NewBus(logger)

	accountsModule := accountservice.NewInMemoryModule(token.Issuer{}, logger)
	catalogModule := listingservice.NewInMemoryModule(logger)
	ordersModule := orderservice.NewInMemoryModule(
		catalogForOrders{listings: catalogModule.Service},
		bus,
		logger,
	)
	downloadsModule := downloadservice.NewInMemoryModule(
		catalogForDownloads{listings: catalogModule.Service},
		ordersForDownloads{orders: ordersModule.Store},
		logger,
	)
	reviewsModule := reviewservice.NewInMemoryModule(
		catalogForReviews{listings: catalogModule.Service},
		logger,
	)

	projector := downloadsModule.Projector
	bus.Subscribe(events.TopicOrderFulfillable, func(ctx context.Context, event events.Envelope) {
		_ = projector.Handle(ctx, event)
	})

	return httpserver.New(
		accountsModule,
		catalogModule,
		ordersModule,
		downloadsModule,
		reviewsModule,
		logger,
		":8080",
	)
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.backfill.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
