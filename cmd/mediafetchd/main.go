package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ytget/mediafetch/internal/api"
	"github.com/ytget/mediafetch/internal/config"
	"github.com/ytget/mediafetch/internal/fetch"
	"github.com/ytget/mediafetch/internal/job"
	"github.com/ytget/mediafetch/internal/registry"
	"github.com/ytget/mediafetch/internal/tagger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("MEDIAFETCH_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.EnsureRoots(); err != nil {
		log.Fatal("create download roots", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fetch the yt-dlp binary if the host doesn't have one.
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		log.Fatal("install yt-dlp", zap.Error(err))
	}

	reg := registry.New()
	engine := fetch.NewYTDLPEngine(log)
	tg := tagger.NewID3Tagger(log)
	svc := job.NewService(ctx, cfg, reg, engine, tg, log)
	handler := api.NewJobHandler(svc, cfg, log)
	srv := api.NewServer(cfg, handler)

	go func() {
		log.Info("server listening",
			zap.String("service", cfg.Service.Name),
			zap.Int("port", cfg.Service.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

// newLogger builds the zap logger from the logging config
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Service.Debug {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}
