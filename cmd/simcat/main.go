package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ldrlegend/backend-pro/internal/app"
	"github.com/ldrlegend/backend-pro/internal/attributes"
	"github.com/ldrlegend/backend-pro/internal/auth"
	"github.com/ldrlegend/backend-pro/internal/masterdata/countries"
	"github.com/ldrlegend/backend-pro/internal/masterdata/operators"
	"github.com/ldrlegend/backend-pro/internal/masterdata/vendors"
	"github.com/ldrlegend/backend-pro/internal/platform/db"
	"github.com/ldrlegend/backend-pro/internal/products"
	"github.com/ldrlegend/backend-pro/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.DSN())
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if err := db.Bootstrap(ctx, dbpool); err != nil {
		logger.Error("apply schema", slog.Any("error", err))
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)

	authService := auth.NewService(usersRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := auth.NewHandler(logger, authService)
	usersHandler := users.NewHandler(logger, usersService, auth.Middleware(authService))

	attributesRepo := attributes.NewRepository(dbpool)
	attributesService := attributes.NewService(attributesRepo, cfg.AttrResolution)
	attributesHandler := attributes.NewHandler(logger, attributesService)

	vendorsRepo := vendors.NewRepository(dbpool)
	vendorsService := vendors.NewService(vendorsRepo)
	vendorsHandler := vendors.NewHandler(logger, vendorsService)

	countriesRepo := countries.NewRepository(dbpool)
	countriesService := countries.NewService(countriesRepo)
	countriesHandler := countries.NewHandler(logger, countriesService)

	operatorsRepo := operators.NewRepository(dbpool)
	operatorsService := operators.NewService(operatorsRepo, countriesService)
	operatorsHandler := operators.NewHandler(logger, operatorsService)

	productsRepo := products.NewRepository(dbpool)
	productsService := products.NewService(productsRepo, attributesService, cfg.ProductWriteMode)
	productsHandler := products.NewHandler(logger, productsService)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthHandler:       authHandler,
		UsersHandler:      usersHandler,
		ProductsHandler:   productsHandler,
		VendorsHandler:    vendorsHandler,
		OperatorsHandler:  operatorsHandler,
		CountriesHandler:  countriesHandler,
		AttributesHandler: attributesHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
