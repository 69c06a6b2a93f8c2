package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mkawano/seat-draw-backend/internal/config"
	"github.com/mkawano/seat-draw-backend/internal/engine"
	"github.com/mkawano/seat-draw-backend/internal/httpapi"
	"github.com/mkawano/seat-draw-backend/internal/hub"
	"github.com/mkawano/seat-draw-backend/internal/layout"
	"github.com/mkawano/seat-draw-backend/internal/mode"
	"github.com/mkawano/seat-draw-backend/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	data, err := layout.LoadDir(cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to load seating data", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	logger.Info("seating data loaded",
		zap.Int("seats", len(data.Layout.Seats)),
		zap.Int("names", len(data.Names)),
		zap.Int("presets", len(data.Preset)),
		zap.Bool("names_by_mode", data.NamesByMode != nil))

	base := session.Config{
		Layout: data.Layout,
		Names:  data.Names,
		Fixed:  config.FixedAssignments,
		Preset: data.Preset,
		Modes: mode.Config{
			Ranges:  config.ModeRanges,
			Names:   data.NamesByMode,
			Default: config.DefaultMode,
		},
		Rules: engine.Rules{
			LuckyEnabled:     cfg.LuckyEnabled,
			LuckyProbability: cfg.LuckyProbability,
			TickMillis:       cfg.SpinTickMillis,
		},
		HideFixedFromSelect: cfg.HideFixedFromSelect,
		Logger:              logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, base)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(h),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("shut down cleanly")
}
