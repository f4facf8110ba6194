package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/BYRON-lang/dashboard/internal/blob"
	"github.com/BYRON-lang/dashboard/internal/config"
	"github.com/BYRON-lang/dashboard/internal/database"
	"github.com/BYRON-lang/dashboard/internal/handler"
	middlewarepkg "github.com/BYRON-lang/dashboard/internal/middleware"
	"github.com/BYRON-lang/dashboard/internal/repository"
	"github.com/BYRON-lang/dashboard/internal/router"
	"github.com/BYRON-lang/dashboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	store, err := blob.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatalf("failed to initialise blob store: %v", err)
	}
	uploader := blob.NewUploader(store, cfg.CDNHost)

	websitesRepo := repository.NewPGXWebsitesRepository(pool)
	websitesService := service.NewWebsitesService(websitesRepo, uploader)
	usageService := service.NewUsageService(store, cfg.StorageFolders, cfg.StorageQuotaBytes())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Websites: handler.NewWebsitesHandler(websitesService, cfg.MaxVideoSizeBytes()),
		Usage:    handler.NewUsageHandler(usageService),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
