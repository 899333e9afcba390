package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"storefront/internal/cartstore"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/gateway"
	"storefront/internal/handle"
	"storefront/internal/httpserver"
)

func main() {
	// .env is a local-dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[web] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.ShopDomain == "" || cfg.StorefrontToken == "" {
		logger.Fatal("SHOPIFY_STORE_DOMAIN and SHOPIFY_STOREFRONT_TOKEN must be set")
	}

	ctx := context.Background()

	handles, ready, cleanup, err := buildHandles(ctx, cfg)
	if err != nil {
		logger.Fatalf("init handle store: %v", err)
	}
	defer cleanup()

	gw := gateway.New(cfg.ShopDomain, cfg.StorefrontToken, cfg.APIVersion, logger)
	carts := cartstore.NewManager(gw, handles, logger)
	catalogSvc := catalog.New(gw, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Carts:   carts,
		Catalog: catalogSvc,
		Ready:   ready,
	}, cfg.AllowedOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// buildHandles constructs the configured handle backend. The returned
// cleanup releases backend resources on exit.
func buildHandles(ctx context.Context, cfg config.Config) (handle.Handles, handle.Pinger, func(), error) {
	switch cfg.HandleBackend {
	case "memory":
		return handle.NewMemory(), nil, func() {}, nil
	case "file", "":
		backend, err := handle.NewFile(cfg.HandleDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return backend, nil, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		backend := handle.NewRedis(client)
		return backend, backend, func() { client.Close() }, nil
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, nil, err
		}
		backend := handle.NewPostgres(pool)
		return backend, backend, pool.Close, nil
	default:
		return nil, nil, nil, errors.New("unknown CART_HANDLE_BACKEND " + cfg.HandleBackend)
	}
}
