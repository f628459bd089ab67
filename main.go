package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"recoveryoffice/clients"
	"recoveryoffice/config"
	"recoveryoffice/handlers"
	"recoveryoffice/middleware"
	"recoveryoffice/routes"
	"recoveryoffice/services/booking"
	"recoveryoffice/services/catalog"
	"recoveryoffice/services/draft"
	"recoveryoffice/services/identity"
	"recoveryoffice/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Backend API client (the external Express/Mongo service).
	backend := clients.NewAPIClient(
		config.AppConfig.BackendAPIURL,
		config.AppConfig.BackendAPIKey,
		config.BackendTimeout(),
		logger,
	)

	// Draft store: in-memory by default, Redis when configured so drafts
	// survive restarts and are shared across instances.
	var draftStore draft.Store
	if config.AppConfig.DraftStore == "redis" {
		redisClient := utils.GetDraftCacheClient()
		draftStore = draft.NewRedisStore(redisClient, config.DraftTTL())
		utils.StartHealthMonitor(redisClient, backend.Ping)
	} else {
		draftStore = draft.NewMemoryStore()
		utils.StartHealthMonitor(nil, backend.Ping)
	}

	serviceCatalog := catalog.NewCache(backend, logger)

	checker := &identity.Checker{
		Remote: backend,
		Logger: logger,
	}

	submissionService := &booking.DefaultSubmissionService{
		Drafts:  draftStore,
		Backend: backend,
		Checker: checker,
		Logger:  logger,
	}

	bookingHandler := handlers.NewBookingHandler(draftStore, serviceCatalog, submissionService, logger)
	servicesHandler := handlers.NewServicesHandler(serviceCatalog, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, bookingHandler, servicesHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
