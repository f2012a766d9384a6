package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"distfit/adapters/api"
	"distfit/adapters/families"
	"distfit/app"
	"distfit/internal"
	"distfit/internal/config"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(appConfig.Log.Level)

	registry := families.NewRegistry()
	service := app.NewFitService(registry, logger)
	handler := api.NewHandler(service, &api.HandlerConfig{
		RequestTimeout: appConfig.Server.RequestTimeout,
		MaxBodyBytes:   appConfig.Server.MaxBodyBytes,
		Defaults:       appConfig.Fit.Raw,
	}, logger)

	server := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting distfit server on port %s (%d families, sort=%s)",
			appConfig.Server.Port, len(registry.List()), appConfig.Fit.Options.SortMetric)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
