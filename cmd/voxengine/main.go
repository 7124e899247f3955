package main

import (
	"flag"

	"voxengine/internal/config"

	"github.com/faiface/mainthread"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "settings file (YAML); built-in defaults when empty")
	fpsLimit   = flag.Int("fps", 0, "frame rate cap, 0 disables")
	debug      = flag.Bool("debug", false, "log chunk load/unload events")
)

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	settings := config.Default()
	if *configPath != "" {
		settings, err = config.Load(*configPath)
		if err != nil {
			logger.Fatal("invalid settings", zap.Error(err))
		}
	}

	mainthread.Run(func() {
		if err := run(settings, logger); err != nil {
			logger.Fatal("voxengine stopped", zap.Error(err))
		}
	})
}
