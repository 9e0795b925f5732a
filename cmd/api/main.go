//go:build !lambda

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia/custodia-api/internal/logger"
	"github.com/custodia/custodia-api/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Custodia API
// @version         1.0
// @description     Pooled custodial vault gated by single-use signed withdrawal authorizations

// @host      localhost:8000
// @BasePath  /api/v1
func main() {
	router := gin.New()
	router.Use(gin.Recovery())

	server.InitializeHandlers()
	server.InitializeRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exiting")
	_ = logger.Sync()
}
