package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whiteboard-backend/internal/api"
	"whiteboard-backend/internal/config"
	"whiteboard-backend/internal/metrics"
	"whiteboard-backend/internal/relay"
	"whiteboard-backend/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log.Println("🚀 Starting whiteboard sync server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize Jaeger tracing first so every operation is traced
	jaegerShutdown, err := telemetry.InitJaeger("whiteboard-backend", cfg.JaegerEndpoint)
	if err != nil {
		log.Printf("⚠️  Failed to initialize Jaeger: %v (continuing without tracing)", err)
		jaegerShutdown = func(ctx context.Context) error { return nil }
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := jaegerShutdown(ctx); err != nil {
			log.Printf("⚠️  Failed to shutdown Jaeger: %v", err)
		}
	}()

	// Prometheus instruments for rooms, connections and protocol events
	met := metrics.New(prometheus.DefaultRegisterer)

	// The relay hub owns every room and connection
	hub := relay.NewHub(relay.Options{
		SendBuffer:      cfg.SendBuffer,
		MaxMessageBytes: int64(cfg.MaxMessageBytes),
	}, met)
	wsHandler := relay.NewHandler(hub, cfg.AllowedOrigin)

	// HTTP surface: health, room stats, metrics, and the /ws entry point
	handler := api.NewHandler(hub, wsHandler)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: it would sever long-lived WebSocket connections.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://%s", cfg.Addr())
		log.Printf("   WS     /ws               - room protocol")
		log.Printf("   GET    /api/health       - health check")
		log.Printf("   GET    /api/rooms/:id    - room occupancy stats")
		log.Printf("   GET    /metrics          - Prometheus metrics")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	// Close every live connection; rooms drain and tear down as their
	// members disappear.
	hub.Shutdown()

	log.Println("✓ Server shutdown complete")
}
