package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/cachefront/cachefront/configs"
	"github.com/cachefront/cachefront/internal/application/orchestrator"
	"github.com/cachefront/cachefront/internal/core/domain/document"
	"github.com/cachefront/cachefront/internal/core/ports"
	"github.com/cachefront/cachefront/internal/infrastructure/db"
	"github.com/cachefront/cachefront/internal/infrastructure/health"
	"github.com/cachefront/cachefront/internal/infrastructure/httpserver"
	"github.com/cachefront/cachefront/internal/infrastructure/observability"
	infraRedis "github.com/cachefront/cachefront/internal/infrastructure/redis"
	"github.com/cachefront/cachefront/internal/infrastructure/repositories"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting cachefront...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := infraRedis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Load collection schemas
	schemas, err := document.LoadSchemas(cfg.Cache.SchemaFile)
	if err != nil {
		logger.Fatal("Failed to load collection schemas:", err)
	}

	// Initialize the fast layer and the orchestrator with its observers
	fastLayer := infraRedis.NewHashStore(redisClient, cfg.Cache.KeyPrefix)
	cacheSvc := orchestrator.New(fastLayer, logger,
		orchestrator.WithObserver(observability.NewMetricsObserver()),
		orchestrator.WithObserver(observability.NewLoggingObserver(logger)),
	)

	// Register every declared collection with its durable store accessor
	for name, schema := range schemas {
		cacheSvc.RegisterCollection(ports.Collection{
			Name:   name,
			Schema: schema,
			Store:  repositories.NewRecordRepository(database, name, logger),
		})
		logger.WithFields(logrus.Fields{"collection": name, "fields": len(schema)}).Info("Registered collection")
	}

	// Block until both backing layers answer before accepting traffic
	readyCtx, readyCancel := context.WithTimeout(context.Background(), cfg.Cache.ReadyTimeout)
	defer readyCancel()
	if err := cacheSvc.WaitReady(readyCtx); err != nil {
		logger.Fatal("Backing layers not ready:", err)
	}

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		CacheService:   cacheSvc,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
