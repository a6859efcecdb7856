// File: cocoti/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cocoti/config"
	"cocoti/handlers"
	"cocoti/middleware"
	"cocoti/routes"
	"cocoti/services/content"
	"cocoti/services/legal"
	"cocoti/services/session"
	"cocoti/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Services.
	legalReader := legal.NewReader(config.AppConfig.LegalDocsDir)
	contentStore := content.NewStore(config.AppConfig.ContentDir)

	sessionClient := utils.GetSessionClient()
	utils.StartHealthMonitor(sessionClient)

	tokenStore := session.NewRedisTokenStore(sessionClient)
	sessionManager := session.NewManager(config.AppConfig.AuthAPIURL, tokenStore)

	// Handlers.
	legalHandler := handlers.NewLegalHandler(legalReader)
	contentHandler := handlers.NewContentHandler(contentStore)
	authHandler := handlers.NewAdminAuthHandler(sessionManager)

	routes.RegisterRoutes(router, legalHandler, contentHandler, authHandler, sessionManager)

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
