package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/database"
	"github.com/craftmarket/compliance-service/handlers"
	"github.com/craftmarket/compliance-service/middleware"
	"github.com/craftmarket/compliance-service/monitoring"
	"github.com/craftmarket/compliance-service/redis"
	"github.com/craftmarket/compliance-service/services"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting compliance service initialization")

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	dbConfig := database.NewConfig()
	db, err := database.Connect(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Services
	complianceService := services.NewComplianceService(db, cfg.Thresholds)
	taxService := services.NewTaxService(db, cfg.Thresholds)
	disclosureService := services.NewDisclosureService(db)
	performanceService := services.NewPerformanceService(db, cfg.Performance)
	auditService := services.NewAuditService(db)

	// Notification dispatcher drains the outbox to the Redis stream.
	// Redis being down at startup is non-fatal: transitions still commit
	// their outbox rows and delivery catches up when the dispatcher starts.
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	redisAddr := config.GetEnvOrDefault("REDIS_ADDR", "")
	if redisAddr != "" {
		redisClient, err := redis.NewClient(&redis.Config{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       config.GetEnvIntOrDefault("REDIS_DB", 0),
		})
		if err != nil {
			slog.Error("Failed to connect to Redis, notification delivery disabled", "error", err)
		} else {
			defer redisClient.Close()
			dispatcher := services.NewNotificationDispatcher(db, redisClient)
			go dispatcher.Start(dispatcherCtx)
		}
	} else {
		slog.Warn("REDIS_ADDR not set, notification delivery disabled")
	}

	// Routes
	apiMux := http.NewServeMux()
	allHandlers := handlers.NewHandlers(complianceService, taxService, disclosureService, performanceService, auditService)
	allHandlers.SetupRoutes(apiMux)
	monitoring.RegisterRoutes(handlers.RouteTemplates())

	// Admin authentication for the API surface
	jwtConfig := middleware.JWTAuthConfig{
		SigningSecret:  []byte(os.Getenv("ADMIN_TOKEN_SECRET")),
		ExpectedIssuer: config.GetEnvOrDefault("ADMIN_TOKEN_ISSUER", "craftmarket-admin"),
		RequiredGroup:  config.GetEnvOrDefault("ADMIN_TOKEN_GROUP", "Marketplace_Admins"),
	}
	if err := jwtConfig.Validate(); err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}
	jwtAuth := middleware.NewJWTAuthMiddleware(jwtConfig)

	corsMiddleware := middleware.CORSMiddleware()
	metricsMiddleware := middleware.MetricsMiddleware()

	// Middleware chain (metrics -> CORS -> JWT auth) applies to the API
	// mux only; health and metrics endpoints stay open
	protectedAPI := metricsMiddleware(corsMiddleware(jwtAuth.Authenticate(apiMux)))

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/v1/", protectedAPI)
	rootMux.Handle("GET /metrics", monitoring.Handler())
	rootMux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	port := config.GetEnvOrDefault("PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      rootMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Compliance service listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down compliance service")
	stopDispatcher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Compliance service stopped")
}
