package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/handlers"
	"ecommerce-backend/internal/middleware"
	"ecommerce-backend/internal/repository"
	"ecommerce-backend/internal/service"
	"ecommerce-backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting e-commerce api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"storage_driver", cfg.Storage.Driver,
		"log_level", cfg.LogLevel,
	)

	// Initialize storage
	var store repository.Store
	switch cfg.Storage.Driver {
	case "memory":
		store = repository.NewMemoryStore()
	default:
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Storage.MongoURI))
		if err != nil {
			log.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("failed to disconnect from mongodb", "error", err)
			}
		}()

		pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := client.Ping(pingCtx, nil); err != nil {
			cancel()
			log.Error("failed to ping mongodb", "uri", cfg.Storage.MongoURI, "error", err)
			os.Exit(1)
		}
		cancel()

		log.Info("connected to mongodb", "database", cfg.Storage.MongoDatabase)
		store = repository.NewMongoStore(client.Database(cfg.Storage.MongoDatabase))
	}

	// Initialize services
	catalogService := service.NewCatalogService(store)
	orderService := service.NewOrderService(store)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(catalogService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Prometheus metrics, enabled by env flag
	if cfg.Metrics.Enabled {
		log.Info("registering /metrics endpoint")
		r.Handle("/metrics", promhttp.Handler())
	}

	// Product endpoints
	r.Post("/products", productHandler.CreateProduct)
	r.Get("/products", productHandler.ListProducts)
	r.Get("/products/{productId}", productHandler.GetProduct)

	// Order endpoints
	r.Post("/orders", orderHandler.CreateOrder)
	r.Get("/orders/{userId}", orderHandler.ListOrders)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
