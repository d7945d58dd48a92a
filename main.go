// File: farehub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farehub/config"
	"farehub/cron"
	"farehub/database"
	ridesRepo "farehub/database/repository/rides"
	"farehub/handlers"
	"farehub/middleware"
	"farehub/providers"
	"farehub/routes"
	"farehub/services/booking"
	ai "farehub/services/intelligence"
	"farehub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Provider registry: built once, immutable, threaded explicitly.
	registry := providers.NewRegistry(
		providers.NewMockProvider("ola"),
		providers.NewMockProvider("uber"),
		providers.NewDeepLinkProvider("rapido"),
	)

	// repositories.
	rideRepo := ridesRepo.NewMongoRideRepo()

	// services.
	explainer := ai.NewGeminiExplainer(config.AppConfig.GeminiAPIKey)
	rideParser := ai.NewGeminiRideParser(config.AppConfig.GeminiAPIKey)

	decisionService := &booking.DefaultDecisionService{
		Registry:    registry,
		Repo:        rideRepo,
		Explainer:   explainer,
		RaceTimeout: time.Duration(config.AppConfig.RaceTimeoutSeconds) * time.Second,
	}

	// Background orchestration worker and its queue client.
	cron.InitOrchestrationWorker(decisionService, rideRepo)
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()

	rideHandler := handlers.NewRideHandler(
		decisionService,
		rideRepo,
		rideParser,
		queueClient,
		utils.GetCacheClient(),
		logger,
	)

	// Register routes.
	routes.RegisterRoutes(router, rideHandler)

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
