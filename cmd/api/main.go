package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/electronicsstore/storefront/api/routes"
	"github.com/electronicsstore/storefront/internal/cart"
	"github.com/electronicsstore/storefront/internal/catalog"
	"github.com/electronicsstore/storefront/internal/checkout"
	"github.com/electronicsstore/storefront/internal/storefront"
	"github.com/electronicsstore/storefront/pkg/config"
	"github.com/electronicsstore/storefront/pkg/db"
	"github.com/electronicsstore/storefront/pkg/instance"
	"github.com/electronicsstore/storefront/pkg/logger"
	"github.com/electronicsstore/storefront/pkg/metrics"
	"github.com/electronicsstore/storefront/pkg/migrate"
	"github.com/electronicsstore/storefront/pkg/money"
	"github.com/electronicsstore/storefront/pkg/phone"
	"github.com/electronicsstore/storefront/pkg/redis"
)

const (
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
	sweepInterval     = 5 * time.Minute
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Environment: cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	closeAll := func() {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i]())
		}
		if errs != nil {
			logg.Error(context.Background(), "error closing resources", errs)
		}
	}
	defer closeAll()

	fail := func(msg string, err error) {
		logg.Error(ctx, msg, err)
		closeAll()
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	var dbClient *db.Client
	if cfg.Catalog.UsesDB() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			fail("failed to bootstrap database", err)
		}
		closers = append(closers, dbClient.Close)

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			fail("failed to run dev migrations", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			fail("failed to bootstrap redis", err)
		}
		closers = append(closers, redisClient.Close)
	}

	var source catalog.Source = catalog.StaticSource{}
	if dbClient != nil {
		source = catalog.NewRepository(dbClient.DB())
	}
	catalogService, err := catalog.NewService(source, storefrontMetrics)
	if err != nil {
		fail("failed to create catalog service", err)
	}

	var (
		cartStore   cart.Store
		memoryStore *cart.MemoryStore
	)
	if cfg.Session.UsesRedis() {
		cartStore, err = cart.NewRedisStore(redisClient, cfg.Session.TTL)
		if err != nil {
			fail("failed to create redis cart store", err)
		}
	} else {
		memoryStore = cart.NewMemoryStore(cfg.Session.TTL)
		cartStore = memoryStore
	}

	cartService, err := cart.NewService(cartStore, catalogService, storefrontMetrics)
	if err != nil {
		fail("failed to create cart service", err)
	}

	paymentPhone, err := phone.Parse(cfg.Store.PaymentPhone)
	if err != nil {
		fail("invalid payment phone", err)
	}
	contactPhone, err := phone.Parse(cfg.Store.ContactPhone)
	if err != nil {
		fail("invalid contact phone", err)
	}

	checkoutService, err := checkout.NewService(cartService, paymentPhone, logg, storefrontMetrics)
	if err != nil {
		fail("failed to create checkout service", err)
	}

	viewBuilder, err := storefront.NewBuilder(catalogService, cartService, storefront.Options{
		StoreName:    cfg.Store.Name,
		ContactPhone: contactPhone,
		PaymentPhone: paymentPhone,
		Formatter:    money.NewRussian(cfg.Store.CurrencySymbol),
	})
	if err != nil {
		fail("failed to create storefront view builder", err)
	}

	var dbPinger db.Pinger
	if dbClient != nil {
		dbPinger = dbClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbPinger,
			redisClient,
			storefrontMetrics,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			catalogService,
			cartService,
			checkoutService,
			viewBuilder,
		),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":             cfg.App.Env,
		"addr":            addr,
		"instance":        instance.GetID(),
		"catalog_source":  cfg.Catalog.Source,
		"session_backend": cfg.Session.Backend,
	})
	logg.Info(logCtx, "starting storefront server")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down storefront server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if memoryStore != nil {
		g.Go(func() error {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if removed := memoryStore.Sweep(); removed > 0 {
						logg.Debug(logg.WithField(gctx, "removed", removed), "cart.sweep")
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		fail("storefront server stopped unexpectedly", err)
	}
	logg.Info(logCtx, "storefront server stopped")
}
