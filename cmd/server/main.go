package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"bankadapter/internal/backoffice"
	bometrics "bankadapter/internal/backoffice/metrics"
	gwhandler "bankadapter/internal/gateway/handler"
	gwmetrics "bankadapter/internal/gateway/metrics"
	gwservice "bankadapter/internal/gateway/service"
	"bankadapter/internal/platform/config"
	"bankadapter/internal/platform/database"
	"bankadapter/internal/platform/health"
	"bankadapter/internal/platform/logger"
	"bankadapter/internal/platform/middleware"
	"bankadapter/internal/refdata"
	"bankadapter/internal/tenant/handler"
	"bankadapter/internal/tenant/service"
	"bankadapter/internal/tenant/store"
	"bankadapter/internal/token"
	"bankadapter/pkg/secrets"
)

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal services packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing bank-adapter",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var configStore service.Store
	if pool != nil {
		configStore = store.NewPostgres(pool.DB())
		log.Info("tenant config store", "backend", "postgres")
	} else {
		configStore = store.NewInMemory()
		log.Warn("tenant config store", "backend", "memory")
	}

	tenantService := service.New(configStore, service.WithLogger(log))
	tenantHandler := handler.New(tenantService, log)

	resolver := secrets.NewEnvResolver(cfg.CredentialEnvPrefix)
	upstream := backoffice.New(resolver, cfg.UpstreamTimeout,
		backoffice.WithLogger(log),
		backoffice.WithMetrics(bometrics.New()),
	)

	gatewayService := gwservice.New(tenantService, upstream,
		gwservice.WithLogger(log),
		gwservice.WithMetrics(gwmetrics.New()),
	)
	gatewayHandler := gwhandler.New(gatewayService, log)

	tokenService := token.NewService(cfg.JWTSigningKey, token.DefaultIssuer, token.DefaultAudience, token.DefaultTTL)

	healthHandler := health.New(cfg.Environment)
	if pool != nil {
		healthHandler.RegisterCheck("database", pool.HealthCheck)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Device)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.ContentTypeJSON)

	healthHandler.Register(router)
	refdata.NewHandler().Register(router)
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokenService, log))
		gatewayHandler.Register(r)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(cfg.AdminTokenHash, log))
		tenantHandler.Register(r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	if pool != nil {
		pool.Close()
	}

	log.Info("server stopped")
}
