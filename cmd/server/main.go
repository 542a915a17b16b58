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

	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/ai"
	"github.com/ndewijer/TradeTrack-Backend/internal/api"
	"github.com/ndewijer/TradeTrack-Backend/internal/config"
	"github.com/ndewijer/TradeTrack-Backend/internal/database"
	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
	"github.com/ndewijer/TradeTrack-Backend/internal/repository"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
	"github.com/ndewijer/TradeTrack-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(logging.Config{
		Level:          cfg.Log.Level,
		Format:         cfg.Log.Format,
		TracingEnabled: cfg.Log.TracingEnabled,
		Version:        version.Version,
	}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	ctx := context.Background()

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logging.Error(ctx, "failed to open database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logging.Error(ctx, "failed to migrate database", err)
		os.Exit(1)
	}

	logging.Info(ctx, "connected to database", zap.String("path", cfg.Database.Path))

	// Create repositories
	documentRepo := repository.NewDocumentRepository(db)
	previewRepo := repository.NewPreviewRepository(db)

	aiClient := newAIClient(cfg.AI)
	inFlight := service.NewInFlight()

	// Create services
	ledgerService := service.NewLedgerService(documentRepo)
	importService := service.NewImportService(ledgerService, previewRepo, aiClient, inFlight, cfg.Import.PreviewTTL)
	directionService := service.NewDirectionService(ledgerService, aiClient, inFlight)
	insightService := service.NewInsightService(ledgerService, aiClient, inFlight)
	backupService, err := service.NewBackupService(ledgerService, cfg.Backup.Dir, cfg.Backup.EncryptionKey)
	if err != nil {
		logging.Error(ctx, "failed to create backup service", err)
		os.Exit(1)
	}

	aiEnabled := cfg.AI.Provider != config.AIProviderNoop
	systemService := service.NewSystemService(db, map[string]bool{
		"report_import":     true,
		"image_import":      aiEnabled,
		"chart_analysis":    aiEnabled,
		"insights":          aiEnabled,
		"encrypted_backups": cfg.Backup.EncryptionKey != "",
		"scheduled_backups": cfg.Backup.Schedule != "",
	})

	var scheduler *service.BackupScheduler
	if cfg.Backup.Schedule != "" {
		scheduler, err = service.NewBackupScheduler(backupService, cfg.Backup.Schedule)
		if err != nil {
			logging.Error(ctx, "failed to create backup scheduler", err)
			os.Exit(1)
		}
		scheduler.Start()
		logging.Info(ctx, "backup schedule active", zap.String("schedule", cfg.Backup.Schedule))
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Ledger:    ledgerService,
		Import:    importService,
		Direction: directionService,
		Insight:   insightService,
		Backup:    backupService,
	}, cfg)

	// Create HTTP server. Model calls can take a while, so the write
	// timeout follows the AI timeout.
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Info(ctx, "starting server", zap.String("addr", cfg.Server.Addr), zap.String("version", version.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "server failed to start", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info(ctx, "shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error(ctx, "server forced to shutdown", err)
	}

	if err := logging.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to flush logs: %v", err)
	}

	log.Println("Server exited")
}

func newAIClient(cfg config.AIConfig) ai.Client {
	if cfg.Provider == config.AIProviderGemini {
		return ai.NewGeminiClient(ai.GeminiConfig{
			Endpoint:    cfg.Endpoint,
			APIKey:      cfg.APIKey,
			TextModel:   cfg.TextModel,
			VisionModel: cfg.VisionModel,
			Timeout:     cfg.Timeout,
		})
	}
	return ai.NewNoopClient()
}
