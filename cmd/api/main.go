package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agri-pos/internal/catalog"
	"agri-pos/internal/config"
	"agri-pos/internal/handler"
	"agri-pos/internal/pos"
	"agri-pos/internal/report"
	"agri-pos/internal/router"
	"agri-pos/internal/service"
	"agri-pos/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting agri-pos API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Record store client
	storeClient := store.NewClient(
		cfg.Store.BaseURL,
		time.Duration(cfg.Store.TimeoutSeconds)*time.Second,
		logger,
	)

	// Session state: catalog snapshot + cart
	snapshot := catalog.New(storeClient, logger)
	if err := snapshot.Reload(ctx); err != nil {
		// The terminal can come up before the store; the operator can
		// reload once it is reachable.
		logger.Warn().Err(err).Msg("initial catalog load failed, store may be offline")
	}
	session := pos.NewSession(snapshot)

	// POS engine
	resolver := pos.NewResolver(logger)
	orchestrator := pos.NewOrchestrator(storeClient, resolver, logger)

	// Services
	productService := service.NewProductService(storeClient, snapshot, cfg.POS.LowStockThreshold, logger)
	customerService := service.NewCustomerService(storeClient, snapshot, resolver, logger)
	orderService := service.NewOrderService(snapshot, logger)
	contentService := service.NewContentService(storeClient, snapshot, logger)
	posService := service.NewPosService(session, orchestrator, logger)

	// HTTP handlers
	exporter := report.NewExporter(logger)
	productHandler := handler.NewProductHandler(productService, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	posHandler := handler.NewPosHandler(posService, logger)
	contentHandler := handler.NewContentHandler(contentService, logger)
	reportHandler := handler.NewReportHandler(orderService, exporter, logger)

	mux := router.New(
		productHandler,
		customerHandler,
		orderHandler,
		posHandler,
		contentHandler,
		reportHandler,
		cfg.Auth.APIKey,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("store", cfg.Store.BaseURL).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
