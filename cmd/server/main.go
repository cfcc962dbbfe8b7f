package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/inkpost/backend/internal/router"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/anonto42/inkpost/backend/pkg/config"
	"github.com/anonto42/inkpost/backend/pkg/firebase"
	"github.com/anonto42/inkpost/backend/pkg/logger"
	"github.com/anonto42/inkpost/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logger.Error.Fatalf("%v", err)
	}
}

// run owns every resource it opens, so deferred cleanup happens on all exits.
func run(configPath string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Firebase login is optional
	var verifier services.TokenVerifier
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	switch {
	case errors.Is(err, firebase.ErrNotConfigured):
		logger.Info.Println("Firebase not configured, federated login disabled.")
	case err != nil:
		return fmt.Errorf("initialize firebase: %w", err)
	default:
		verifier = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, cfg)
	if err := router.SetupRoutes(e, db.Postgres, cfg, verifier); err != nil {
		return fmt.Errorf("set up routes: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info.Printf("Server listening on :%s (%s)", cfg.Port, cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
