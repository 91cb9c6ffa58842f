package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dimaq12/sweeper/config"
	"github.com/dimaq12/sweeper/game"
	"github.com/dimaq12/sweeper/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config/config.yaml if present)")
	mode := flag.String("mode", "", "tui or serve, overrides the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if *mode != "" {
		cfg.Mode = *mode
		if err := cfg.Validate(); err != nil {
			logrus.Fatal(err)
		}
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		logrus.Fatalf("build logger: %v", err)
	}

	switch cfg.Mode {
	case "serve":
		logger.WithField("addr", cfg.Server.Addr).Info("http server starting")
		if err := server.NewServer(cfg.Server.MaxCells, logger).Router().Run(cfg.Server.Addr); err != nil {
			logger.WithError(err).Fatal("http server stopped")
		}
	default:
		seed := cfg.Board.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		controller := game.NewGameController(rand.New(rand.NewSource(seed)), logger)
		service := game.NewMinesweeperService(controller, game.BoardConfig{
			Width:  cfg.Board.Width,
			Height: cfg.Board.Height,
			Mines:  cfg.Board.Mines,
		}, logger)
		if err := service.Run(); err != nil {
			logger.WithError(err).Fatal("terminal ui stopped")
		}
	}
}
