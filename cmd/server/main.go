// @title           Sales API
// @version         1.0
// @description     Point-of-sale backend (api-sales).
// @description     Provides user registration, JWT authentication, a product catalog and sale records.

// @host      localhost:8080
// @BasePath  /
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main is the entry point of the sales backend.
//
// The package is responsible for the server lifecycle:
//   - loading environment variables from .env (if present);
//   - loading the configuration from ./configs/server.yaml;
//   - opening the database connection and running migrations;
//   - building repositories, services, middleware and HTTP handlers;
//   - starting the HTTP(S) server with the configured timeouts;
//   - handling termination signals (SIGINT, SIGTERM, SIGQUIT);
//   - graceful shutdown within the configured budget.
//
// The package holds no business logic. The HTTP API lives in
// internal/server/api and is documented with OpenAPI (Swagger).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/pdv-labs/api-sales/internal/server/api"
	"github.com/pdv-labs/api-sales/internal/server/config"
	"github.com/pdv-labs/api-sales/internal/server/middleware"
	h "github.com/pdv-labs/api-sales/internal/server/net/http"
	"github.com/pdv-labs/api-sales/internal/server/repository"
	"github.com/pdv-labs/api-sales/internal/server/service"
	"github.com/pdv-labs/api-sales/internal/shared/logger"

	_ "github.com/pdv-labs/api-sales/swagger/docs"
)

func main() {
	httpLogger := logger.NewHTTPLogger()
	sugar := httpLogger.Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		sugar.Fatal(err)
	}
	cfg.ApplyEnvOverrides()

	db, err := config.OpenDB(cfg)
	if err != nil {
		sugar.Fatal(err)
	}
	defer db.Close()

	if cfg.Migrations.Enabled {
		if err := config.Migrate(db, cfg); err != nil {
			sugar.Fatal(err)
		}
	}

	usersRepo := repository.NewUsersRepository(db)
	productsRepo := repository.NewProductsRepository(db)
	salesRepo := repository.NewSalesRepository(db)

	repos := service.Repositories{
		Users:    usersRepo,
		Products: productsRepo,
		Sales:    salesRepo,
	}
	svc := service.NewServices(repos, cfg)

	verifier := middleware.NewJWTVerifier(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
	)

	handler := api.NewHandler(svc, httpLogger, verifier)
	router := h.NewRouter(handler, svc.Auth, httpLogger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
