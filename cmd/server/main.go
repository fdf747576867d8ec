package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/Eklavvyaaaaa/Carbonx/internal/accesstoken"
	issuerHandler "github.com/Eklavvyaaaaa/Carbonx/internal/issuer/handler"
	issuerService "github.com/Eklavvyaaaaa/Carbonx/internal/issuer/service"
	issuerStore "github.com/Eklavvyaaaaa/Carbonx/internal/issuer/store"
	marketHandler "github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/handler"
	"github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/pricing"
	marketService "github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/service"
	marketStore "github.com/Eklavvyaaaaa/Carbonx/internal/marketplace/store"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/config"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/httpserver"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/logger"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/metrics"
	platformredis "github.com/Eklavvyaaaaa/Carbonx/internal/platform/redis"
	retireHandler "github.com/Eklavvyaaaaa/Carbonx/internal/retirement/handler"
	retireService "github.com/Eklavvyaaaaa/Carbonx/internal/retirement/service"
	retireStore "github.com/Eklavvyaaaaa/Carbonx/internal/retirement/store"
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	httptransport "github.com/Eklavvyaaaaa/Carbonx/internal/transport/http"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/audit"
	auditworker "github.com/Eklavvyaaaaa/Carbonx/pkg/platform/audit/worker"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Audit events flow through a bounded channel so publishing never sits
	// on a request path; the worker drains to Kafka when brokers are
	// configured and to structured logs otherwise.
	channel := audit.NewChannelPublisher(1024)
	var sink audit.Publisher = audit.NewLogPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		sink = kafka
	}

	stores, closeStores, err := buildStores(cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	// The in-process ledger stands in for the external settlement layer in
	// local and test deployments.
	ledger := settlement.NewMemoryLedger(cfg.ContractAddress)

	registry, err := issuerService.New(issuerService.Config{
		Admin:           cfg.Admin,
		Quorum:          cfg.VoteQuorum,
		GovernanceAsset: cfg.GovernanceAsset,
	}, stores.issuer, ledger, log, m, channel)
	if err != nil {
		return err
	}

	retirement, err := retireService.New(retireService.Config{
		Creator:         cfg.Admin,
		ContractAddress: cfg.ContractAddress,
	}, stores.retirement, ledger, log, m, channel)
	if err != nil {
		return err
	}

	marketplace, err := marketService.New(marketService.Config{
		Creator:           cfg.Admin,
		ContractAddress:   cfg.ContractAddress,
		Curve:             pricing.Curve{Base: cfg.BasePrice, Slope: cfg.Slope},
		LegacyCounterMode: cfg.LegacyCounterMode,
	}, stores.marketplace, ledger, retirement, log, m, channel)
	if err != nil {
		return err
	}

	tokens := accesstoken.New(cfg.JWTSigningKey, "carbonx")

	router := httptransport.NewRouter(log, m,
		issuerHandler.New(registry, log, tokens),
		marketHandler.New(marketplace, log, tokens),
		retireHandler.New(retirement, log, tokens),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditworker.New(sink, channel.Inbox()).Run(ctx)
	})
	g.Go(func() error {
		log.Info("starting carbonx", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return httpserver.Shutdown(srv)
	})

	return g.Wait()
}

type featureStores struct {
	issuer      issuerService.Store
	marketplace marketService.Store
	retirement  retireService.Store
}

// buildStores picks the persistence backend: PostgreSQL when configured,
// Redis for the registry when only Redis is configured, memory otherwise.
func buildStores(cfg config.Server, log *slog.Logger) (featureStores, func(), error) {
	noop := func() {}

	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return featureStores{}, noop, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return featureStores{}, noop, err
		}
		log.Info("using postgres stores")
		return featureStores{
			issuer:      issuerStore.NewPostgresStore(db),
			marketplace: marketStore.NewPostgresStore(db),
			retirement:  retireStore.NewPostgresStore(db),
		}, func() { db.Close() }, nil
	}

	stores := featureStores{
		issuer:      issuerStore.NewMemoryStore(),
		marketplace: marketStore.NewMemoryStore(),
		retirement:  retireStore.NewMemoryStore(),
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return featureStores{}, noop, err
		}
		log.Info("using redis registry store")
		stores.issuer = issuerStore.NewRedisStore(client.Client)
		return stores, func() { client.Close() }, nil
	}

	log.Info("using in-memory stores")
	return stores, noop, nil
}
