// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"domainfolio/internal/audit"
	"domainfolio/internal/category"
	"domainfolio/internal/platform/config"
	"domainfolio/internal/platform/httpserver"
	"domainfolio/internal/platform/logger"
	"domainfolio/internal/platform/metrics"
	platformpg "domainfolio/internal/platform/postgres"
	platformredis "domainfolio/internal/platform/redis"
	portfoliohandler "domainfolio/internal/portfolio/handler"
	portfolioservice "domainfolio/internal/portfolio/service"
	"domainfolio/internal/portfolio/store"
	"domainfolio/internal/registrar"
	httptransport "domainfolio/internal/transport/http"
	"domainfolio/internal/whois"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx := context.Background()

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}

	// Repository selection: Postgres when configured, then Redis, then the
	// in-memory store for local development.
	var repo store.Repository
	switch {
	case cfg.PostgresURL != "":
		pool, err := platformpg.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("postgres migration failed", "error", err.Error())
			os.Exit(1)
		}
		repo = pg
	case redisClient != nil:
		repo = store.NewRedis(redisClient.Client)
	default:
		repo = store.NewInMemory()
		log.Warn("no storage backend configured, portfolio is in-memory only")
	}

	var whoisClient whois.Client = &whois.Mock{Latency: cfg.WhoisLatency}
	if redisClient != nil {
		whoisClient = whois.NewCache(whoisClient, redisClient.Client, cfg.WhoisCacheTTL, log)
	}

	registrarStore := registrar.NewInMemoryStore()
	registrarStore.Seed(registrar.DefaultSeed())
	categoryStore := category.NewInMemoryStore()
	categoryStore.Seed(category.DefaultSeed())

	auditLog := audit.NewInMemoryLog(log)

	portfolio := portfolioservice.New(repo, whoisClient, registrarStore,
		portfolioservice.WithLogger(log),
		portfolioservice.WithMetrics(m),
		portfolioservice.WithAudit(auditLog),
	)

	router := httptransport.NewRouter(log, m,
		portfoliohandler.New(portfolio, auditLog, log),
		httptransport.NewReferenceHandler(registrarStore, categoryStore),
		httptransport.NewWhoisHandler(whoisClient),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting domainfolio", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
