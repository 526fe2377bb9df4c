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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"transcribeui/internal/api"
	"transcribeui/internal/config"
	"transcribeui/internal/logging"
	"transcribeui/internal/metrics"
	"transcribeui/internal/session"
	"transcribeui/internal/stt"
	"transcribeui/internal/uploader"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Development(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Set Gin mode (release unless told otherwise)
	if os.Getenv("GIN_MODE") == "" {
		if cfg.Development() {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	}

	provider, err := stt.CreateProvider(cfg, logger.Named("stt"))
	if err != nil {
		return err
	}
	logger.Info("STT provider initialized", zap.String("provider", provider.Name()))

	collector := metrics.New()
	uploaderLogger := logger.Named("uploader")
	sessions := session.NewManager(func() *uploader.Uploader {
		return uploader.New(provider, collector, uploaderLogger)
	}, cfg.SessionMaxAge, logger.Named("session"))

	handler := api.NewHandler(sessions, collector.Handler(), logger.Named("api"))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestLogger(logger.Named("http")))
	r.Use(api.CORS(cfg.CORSAllowOrigin))
	if err := api.RegisterRoutes(r, handler); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.Run(ctx, sweepInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("transcription uploader running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		handler.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("transcriptions still running at exit")
	}
	return nil
}
