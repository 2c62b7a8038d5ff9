package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/handler"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/nikolayk812/storefront-cart/internal/repository/memory"
	"github.com/nikolayk812/storefront-cart/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront-cart: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(logger.Options{Service: "storefront-cart", Env: cfg.AppEnv, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	carts, products, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStore: %w", err)
	}
	defer closeStore()

	cartSvc, err := service.NewCart(carts, products,
		service.WithLogger(log.Named("cart")),
		service.WithStockEnforcement(cfg.EnforceStock))
	if err != nil {
		return fmt.Errorf("service.NewCart: %w", err)
	}

	catalogSvc, err := service.NewCatalog(products)
	if err != nil {
		return fmt.Errorf("service.NewCatalog: %w", err)
	}

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(
		handler.RouterConfig{JWTSecret: []byte(cfg.JWTSecret), Log: log.Named("http")},
		handler.NewCartHandler(cartSvc),
		handler.NewProductHandler(catalogSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", server.Addr), zap.String("store", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}

	log.Info("bye")
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (port.CartRepository, port.ProductRepository, func(), error) {
	if cfg.StoreBackend == config.StoreMemory {
		return memory.NewCartStore(), memory.NewProductStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("pool.Ping: %w", err)
	}

	carts, err := repository.NewCart(pool)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("repository.NewCart: %w", err)
	}

	products, err := repository.NewProduct(pool)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("repository.NewProduct: %w", err)
	}

	return carts, products, pool.Close, nil
}
