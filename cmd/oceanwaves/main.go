// Package main is the entry point for the interactive ocean viewer.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/oceanwaves/internal/config"
	"github.com/Faultbox/oceanwaves/internal/logger"
	"github.com/Faultbox/oceanwaves/internal/ocean"
	"github.com/Faultbox/oceanwaves/internal/stream"
	"github.com/Faultbox/oceanwaves/internal/viewer"
	"github.com/Faultbox/oceanwaves/internal/wavestore"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Ocean Waves ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	store := wavestore.NewDir(cfg.Simulation.WaveDir)
	sim, err := ocean.New(cfg.OceanConfig(), store, ocean.WithLogger(logger.Named("ocean")))
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}

	var extra []ocean.Renderer
	if cfg.Stream.Enabled {
		hub := stream.NewHub(cfg.Stream.Every, sim, logger.Named("stream"))
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := hub.ListenAndServe(ctx, cfg.Stream.Addr, cfg.Stream.Path); err != nil {
				logger.Error("stream server stopped", zap.Error(err))
			}
		}()
		defer func() {
			cancel()
			<-done
		}()
		extra = append(extra, hub)
	}

	v, err := viewer.New(viewer.Config{
		Title:         "Ocean Waves",
		Width:         cfg.Graphics.Width,
		Height:        cfg.Graphics.Height,
		Fullscreen:    cfg.Graphics.Fullscreen,
		VSync:         cfg.Graphics.VSync,
		TexturePath:   cfg.Graphics.Texture,
		SolidColor:    cfg.Graphics.SolidColor,
		ClearColor:    cfg.Graphics.ClearColor,
		ScreenshotDir: cfg.Graphics.ScreenshotDir,
	}, sim, logger.Named("viewer"), extra...)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
