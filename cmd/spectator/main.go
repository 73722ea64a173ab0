package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Garsondee/Soccer-Sense/internal/config"
	"github.com/Garsondee/Soccer-Sense/internal/game"
	"github.com/Garsondee/Soccer-Sense/internal/logging"
	"github.com/Garsondee/Soccer-Sense/internal/metrics"
	"github.com/Garsondee/Soccer-Sense/internal/spectate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	var configPath, addr string
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.StringVar(&addr, "addr", "", "listen address (overrides spectator.addr)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if addr == "" {
		addr = cfg.Spectator.Addr
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	rec := metrics.New()
	m, err := game.NewMatch(cfg, game.WithLogger(logger), game.WithEventSink(rec))
	if err != nil {
		logger.Fatal("create match", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := spectate.New(m, rec, logger).Run(ctx, addr); err != nil {
		logger.Fatal("spectator", zap.Error(err))
	}
	logger.Info("spectator stopped", zap.Int("ticks", m.Tick()))
}
