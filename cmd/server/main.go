package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/groupspend/internal/auth"
	"github.com/mmynk/groupspend/internal/config"
	"github.com/mmynk/groupspend/internal/events"
	"github.com/mmynk/groupspend/internal/middleware"
	"github.com/mmynk/groupspend/internal/server"
	"github.com/mmynk/groupspend/internal/service"
	"github.com/mmynk/groupspend/internal/storage/sqlite"
	"github.com/mmynk/groupspend/pkg/api/apiconnect"
	"github.com/mmynk/groupspend/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	logger := slog.Default()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.EventsEnabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		publisher = amqpPublisher
		logger.Info("Publishing expense events", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	interceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
	)

	// Register Connect services
	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, logger), interceptors)
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(
		service.NewGroupService(store), interceptors)
	expensePath, expenseHandler := apiconnect.NewExpenseServiceHandler(
		service.NewExpenseService(store, publisher), interceptors)
	personalPath, personalHandler := apiconnect.NewPersonalServiceHandler(
		service.NewPersonalService(store), interceptors)

	router := server.NewRouter(server.RouterParams{
		Config: cfg,
		Logger: logger,
		Services: []server.Service{
			{Path: authPath, Handler: authHandler},
			{Path: groupPath, Handler: groupHandler},
			{Path: expensePath, Handler: expenseHandler},
			{Path: personalPath, Handler: personalHandler},
		},
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Health:  store,
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      h2c.NewHandler(router, &http2.Server{}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", cfg.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
