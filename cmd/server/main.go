package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"fes/internal/certificate/guard"
	"fes/internal/certificate/handler"
	certmetrics "fes/internal/certificate/metrics"
	"fes/internal/certificate/service"
	"fes/internal/document"
	"fes/internal/document/store"
	"fes/internal/platform/config"
	"fes/internal/platform/featureflag"
	"fes/internal/platform/httpserver"
	"fes/internal/platform/logger"
	"fes/internal/platform/metrics"
	"fes/internal/platform/queue"
	"fes/internal/platform/redis"
	"fes/internal/trade/dispatch"
	trademetrics "fes/internal/trade/metrics"
	"fes/internal/trade/notify"
	"fes/internal/trade/schema"
	"fes/internal/trade/transform"
	httptransport "fes/internal/transport/http"
	"fes/pkg/platform/audit"
	"fes/pkg/platform/sidechannel"
)

// documentStore is what the certificate and trade packages need from storage.
type documentStore interface {
	FindOne(ctx context.Context, pred document.Predicate) (*document.Document, error)
	Count(ctx context.Context, pred document.Predicate) (int, error)
	UpdateOne(ctx context.Context, pred document.Predicate, update document.Update) error
	Append(ctx context.Context, documentNumber string, event audit.Event) error
}

// main wires dependencies, serves HTTP and drains background work on shutdown.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checks := map[string]httptransport.HealthCheck{}

	docs, db, err := openDocumentStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["postgres"] = db.PingContext
	}

	flags, redisClient, err := openFlagSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient.Health
	}

	registry, err := schema.NewRegistry()
	if err != nil {
		return fmt.Errorf("load trade schemas: %w", err)
	}
	producer := queue.NewProducer(
		queue.WithLogger(log),
		queue.WithDeliveryTimeout(cfg.Trade.PublishTimeout),
	)
	router, err := dispatch.New(flags, cfg.Trade.IntegrationFlag, producer,
		transform.New(cfg.Trade.ReferenceServiceURL),
		registry,
		dispatch.Destination{
			URL:       cfg.Trade.QueueURL,
			QueueName: cfg.Trade.QueueName,
			Enabled:   cfg.Trade.QueueEnabled,
		},
		dispatch.WithLogger(log),
		dispatch.WithMetrics(trademetrics.New(reg)),
	)
	if err != nil {
		return err
	}
	reporter, err := notify.NewVoidReporter(docs, router, notify.WithLogger(log))
	if err != nil {
		return err
	}

	side := sidechannel.New(log)
	certificates, err := service.New(docs, guard.New(docs),
		service.WithLogger(log),
		service.WithAuditPublisher(audit.NewPublisher(docs)),
		service.WithNotifier(reporter),
		service.WithSideChannel(side),
		service.WithMetrics(certmetrics.New(reg)),
	)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(httptransport.RouterConfig{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Checks:   checks,
		Modules:  []httptransport.Module{handler.New(certificates, log)},
	}))

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting fes", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	if err := side.Wait(shutdownCtx); err != nil {
		log.Error("side effects still running at shutdown", "error", err)
	}
	if err := producer.Close(shutdownCtx); err != nil {
		log.Error("queue producer close failed", "error", err)
	}
	log.Info("shutdown complete")
	return nil
}

// openDocumentStore returns the Postgres store when DATABASE_URL is set and
// the in-memory store otherwise. db is nil for the in-memory store.
func openDocumentStore(ctx context.Context, cfg config.Database, log *slog.Logger) (documentStore, *sql.DB, error) {
	if cfg.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory document store")
		return store.NewInMemoryStore(), nil, nil
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	pg := store.NewPostgres(db)
	if err := pg.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return pg, db, nil
}

// openFlagSource reads the integration flag from Redis when configured and
// from configuration otherwise.
func openFlagSource(ctx context.Context, cfg config.Config, log *slog.Logger) (dispatch.FlagSource, *redis.Client, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Warn("REDIS_URL not set, trade integration flag fixed from configuration",
			"flag", cfg.Trade.IntegrationFlag,
			"enabled", cfg.Trade.IntegrationDefault,
		)
		return featureflag.NewStaticSource(nil, cfg.Trade.IntegrationDefault), nil, nil
	}
	return featureflag.NewRedisSource(client.Client, featureflag.WithFallback(cfg.Trade.IntegrationDefault)), client, nil
}
