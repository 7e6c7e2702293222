package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fossabot/short/internal/config"
	"github.com/fossabot/short/internal/handlers"
	"github.com/fossabot/short/internal/logger"
	"github.com/fossabot/short/internal/repository"
	"github.com/fossabot/short/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	log, err := logger.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Run Migrations
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		log.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	// 5. Initialize Redis
	rdb, err := repository.InitRedis(cfg.RedisURL)
	if err != nil {
		log.Warn("Failed to connect to Redis, link cache disabled", "error", err)
		rdb = nil
	}

	// 6. Initialize Services
	geoIPService := services.NewGeoIPService(cfg.GeoIPDBPath, log)
	classifier := services.NewClassifier(cfg.SpecialSuffixes())
	linkService := services.NewLinkService(db, classifier, cfg.InitialSlugLength)
	accessLogService := services.NewAccessLogService(db, log, geoIPService)
	turnstileService := services.NewTurnstileService(cfg.TurnstileSecret, cfg.TurnstileVerifyURL, log)
	proxyService := services.NewProxyService(cfg.AdminEmail, log)
	qrService := services.NewQRService()
	rateLimiter := services.NewIPRateLimiter(5, 10, log)

	// 7. Initialize Handler
	h := handlers.NewHandler(cfg, log, db, rdb, linkService, accessLogService, turnstileService, proxyService, qrService)

	// 8. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter(rateLimiter)

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go accessLogService.Start(workerCtx)
	go geoIPService.Init()
	rateLimiter.StartCleanup(10 * time.Minute)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	geoIPService.Close()
	// Give the access log worker a moment to drain
	time.Sleep(100 * time.Millisecond)

	log.Info("Server exiting")
	return nil
}
