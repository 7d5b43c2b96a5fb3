package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/application"
	"github.com/Sajal-97/Blind-Stick-Server/internal/config"
	"github.com/Sajal-97/Blind-Stick-Server/internal/database"
	"github.com/Sajal-97/Blind-Stick-Server/internal/events"
	"github.com/Sajal-97/Blind-Stick-Server/internal/handler"
	"github.com/Sajal-97/Blind-Stick-Server/internal/health"
	"github.com/Sajal-97/Blind-Stick-Server/internal/kafka"
	"github.com/Sajal-97/Blind-Stick-Server/internal/logger"
	"github.com/Sajal-97/Blind-Stick-Server/internal/middleware"
	"github.com/Sajal-97/Blind-Stick-Server/internal/provider/google"
	"github.com/Sajal-97/Blind-Stick-Server/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "blind-stick-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting blind-stick-server",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&repository.NavigationRecordModel{}); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize Kafka producer and event publisher
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()
	publisher := events.NewPublisher(kafkaProducer, log)

	// Initialize repository and background audit trail
	navRepo := repository.NewGormNavigationRepository(db)
	audit := application.NewAuditTrail(navRepo, log)

	// Initialize provider adapters. Adapters with empty keys report
	// "unavailable" and the pipeline degrades per stage.
	transcriber := google.NewSpeechClient(cfg.Providers.SpeechAPIKey, cfg.Providers.TranscribeTimeout, log)
	translator := google.NewTranslateClient(cfg.Providers.TranslateAPIKey, cfg.Providers.TranslateTimeout, log)
	geocoder := google.NewGeocodeClient(cfg.Providers.MapsAPIKey, cfg.Providers.GeocodeTimeout, log)
	router := google.NewDirectionsClient(cfg.Providers.MapsAPIKey, cfg.Providers.RouteTimeout, log)

	// Initialize application service
	navService := application.NewNavigationService(
		transcriber,
		translator,
		geocoder,
		router,
		audit,
		publisher,
		cfg.TargetLanguage,
		log,
	)

	// Initialize HTTP handlers
	navHandler := handler.NewNavigationHandler(navService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Apply global middleware
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.LoggerMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "blind-stick-server")
	healthHandler.RegisterRoutes(engine)

	// Register routes
	navHandler.RegisterRoutes(&engine.RouterGroup, cfg.APIKey)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down blind-stick-server...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	// Drain pending audit records before exit
	audit.Close()

	log.Info("blind-stick-server stopped")
}
