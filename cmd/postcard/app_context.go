package main

import (
	"fmt"
	"io"
	"time"

	"github.com/youruser/postcard/internal/config"
	"github.com/youruser/postcard/internal/fonts"
	"github.com/youruser/postcard/internal/logger"
	"github.com/youruser/postcard/internal/payload"
	"github.com/youruser/postcard/internal/util"
)

type appContext struct {
	cfg      config.Config
	log      *logger.Logger
	registry *fonts.Registry
	resolver *payload.Resolver
}

func newAppContext(flags *rootFlags, logOut io.Writer) (*appContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.fontDir != "" {
		cfg.FontDir = flags.fontDir
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, HumanReadable: cfg.LogHuman, Writer: logOut})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	reg := fonts.Builtin()
	if cfg.FontDir != "" {
		skipped, err := reg.LoadDir(cfg.FontDir)
		if err != nil {
			return nil, err
		}
		for _, path := range skipped {
			log.Warn("font skipped", "path", path)
		}
	}
	log.Debug("fonts loaded", "families", len(reg.Families()))

	return &appContext{
		cfg:      cfg,
		log:      log,
		registry: reg,
		resolver: &payload.Resolver{
			Client: util.NewHTTPClient(time.Duration(cfg.DownloadTimeoutSeconds) * time.Second),
		},
	}, nil
}
