package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/restaurant-ordering/internal/catalog"
	"github.com/jcmexdev/restaurant-ordering/internal/coordinator/checkoutlog"
	"github.com/jcmexdev/restaurant-ordering/internal/coordinator/checkoutlog/sqlite"
	"github.com/jcmexdev/restaurant-ordering/internal/ledger"
	"github.com/jcmexdev/restaurant-ordering/internal/pkg/kvstore"
	"github.com/jcmexdev/restaurant-ordering/internal/pkg/telemetry"
	"github.com/jcmexdev/restaurant-ordering/internal/storefront"
	"github.com/jcmexdev/restaurant-ordering/internal/storefront/httpx"
)

func main() {
	telemetry.InitLogger(getEnv("LOG_LEVEL", "info"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		slog.Error("ordering service stopped", "error", err)
		os.Exit(1)
	}
}

// run serves until ctx is done. It owns every resource, so deferred
// cleanup has finished by the time it returns.
func run(ctx context.Context) error {
	shutdown, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "ordering-service"),
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Environment: getEnv("ENVIRONMENT", "development"),
	})
	if err != nil {
		return fmt.Errorf("initialise tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	storeCfg := kvstore.Config{
		Driver:    getEnv("STORE_DRIVER", kvstore.DriverSQLite),
		Path:      getEnv("STORE_PATH", "./data/orders.db"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		Namespace: getEnv("REDIS_NAMESPACE", "rms"),
	}
	store, closeStore, err := kvstore.Open(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", storeCfg.Driver, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("store close error", "error", err)
		}
	}()

	opts := []ledger.Option{ledger.WithHistoryKey(getEnv("HISTORY_KEY", ledger.DefaultHistoryKey))}
	var logReader checkoutlog.Reader
	if path := os.Getenv("CHECKOUT_LOG_PATH"); path != "" {
		checkoutLog, err := sqlite.Open(path)
		if err != nil {
			return fmt.Errorf("open checkout log %q: %w", path, err)
		}
		defer checkoutLog.Close()
		opts = append(opts, ledger.WithCheckoutLog(checkoutLog))
		logReader = checkoutLog
	}

	session := storefront.NewSession(catalog.DefaultMenu(), ledger.New(store, opts...))
	router := httpx.NewRouter(httpx.NewHandler(session, logReader))

	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "8080"),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("ordering service running", "addr", srv.Addr, "store", storeCfg.Driver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
