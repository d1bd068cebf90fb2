package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sujalbistaa/socialapp/internal/config"
	"github.com/sujalbistaa/socialapp/internal/feed"
	routes "github.com/sujalbistaa/socialapp/internal/http"
	"github.com/sujalbistaa/socialapp/internal/log"
	"github.com/sujalbistaa/socialapp/internal/metrics"
	"github.com/sujalbistaa/socialapp/internal/store"
	"github.com/sujalbistaa/socialapp/internal/ws"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// 1. Open the post store and seed it
	repo, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error.Fatalf("Failed to open post store: %v", err)
	}
	if err := store.Seed(ctx, repo); err != nil {
		log.Error.Fatalf("Failed to seed posts: %v", err)
	}

	// 2. Initialize WebSocket Hub
	hub := ws.NewHub()
	go hub.Run()

	// 3. Feed controller
	ctrl, err := feed.New(ctx, repo, feed.Options{
		Operator:    cfg.OperatorName,
		SubmitDelay: cfg.SubmitDelay,
		PulseFor:    cfg.PulseFor,
		Publisher:   routes.HubPublisher{Hub: hub},
		Recorder:    metrics.NewFeed(prometheus.DefaultRegisterer),
	})
	if err != nil {
		log.Error.Fatalf("Failed to start feed: %v", err)
	}

	// 4. Router
	router := gin.New()
	routes.SetupRoutes(router, cfg, ctrl, hub)

	// 5. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Info.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error.Fatal("Server forced to shutdown:", err)
	}
	hub.Stop()

	log.Info.Println("Server exiting")
}
