package main

import (
	"flag"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpsplayground/config"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "YAML config overlaid on the built-in defaults; watched for changes")
	debug := flag.Bool("debug", false, "enable debug mode")
	invertY := flag.Bool("invert-y", false, "invert vertical look")
	seed := flag.Uint64("seed", 0, "override every scenery cluster seed")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logrus.NewEntry(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	if *invertY {
		cfg.Controller.InvertY = true
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.WithError(err).Warn("sentry init failed")
		}
		defer sentry.Flush(2 * time.Second)
		defer sentry.Recover()
	}

	var watcher *config.Watcher
	if *configPath != "" {
		watcher, err = config.NewWatcher(*configPath, log)
		if err != nil {
			log.WithError(err).Warn("config hot reload disabled")
		}
	}

	var seedOverride *uint64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedOverride = seed
		}
	})

	game, err := NewGame(cfg, watcher, log, *debug, seedOverride)
	if err != nil {
		log.WithError(err).Fatal("build scene")
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.TPS > 0 {
		ebiten.SetTPS(cfg.Window.TPS)
	}

	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game exited")
	}
}
