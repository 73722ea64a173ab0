package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Garsondee/Soccer-Sense/internal/assets"
	"github.com/Garsondee/Soccer-Sense/internal/config"
	"github.com/Garsondee/Soccer-Sense/internal/game"
	"github.com/Garsondee/Soccer-Sense/internal/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	textures := assets.NewFromConfig(cfg.Assets, logger)
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	// A failed load is not fatal: the renderer falls back to a flat pitch.
	if err := textures.Init(loadCtx); err != nil {
		logger.Warn("asset load failed", zap.Error(err))
	}
	cancel()
	loaded, total := textures.Loading().Progress()
	logger.Info("assets ready", zap.Int("loaded", loaded), zap.Int("total", total))

	g, err := game.New(cfg, textures, logger)
	if err != nil {
		logger.Fatal("create game", zap.Error(err))
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Soccer Sense")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.Match.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
