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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ga-dictionary/api-server-go/handlers"
	"github.com/ga-dictionary/api-server-go/middleware"
	"github.com/ga-dictionary/api-server-go/pkg/database"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting dictionary API server initialization")

	dbConfig := database.NewConfig()
	db, err := database.Connect(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewHandler(db)

	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"dictionary-api","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})

	// Debug endpoint
	mux.HandleFunc("/debug", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"debug":"enabled","service":"dictionary-api","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	jwtAuth := middleware.NewJWTAuthMiddleware(middleware.JWTAuthConfig{
		JWKSURL:          os.Getenv("IDP_JWKS_URL"),
		ExpectedIssuer:   os.Getenv("IDP_ISSUER"),
		ExpectedAudience: os.Getenv("IDP_AUDIENCE"),
	}, handler.UserService())

	// Middleware chain, outermost first
	var root http.Handler = mux
	root = middleware.RouteGuard(root)
	root = jwtAuth.ResolvePrincipal(root)
	root = middleware.RequestLogging(root)
	root = middleware.MetricsMiddleware(root)
	root = middleware.RateLimitMiddleware(rateLimitMax(), time.Minute)(root)
	root = middleware.SecurityHeaders(root)
	root = middleware.CORSMiddleware()(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Dictionary API server starting", "port", port, "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down dictionary API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Dictionary API server exited")
}

// rateLimitMax reads the per-minute request limit from the environment
func rateLimitMax() int {
	if value := os.Getenv("RATE_LIMIT_PER_MINUTE"); value != "" {
		var parsed int
		if _, err := fmt.Sscanf(value, "%d", &parsed); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 300
}
