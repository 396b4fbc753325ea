package main

import (
	"github.com/arnaudmoncondhuy/synapse-admin/internal/config"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("configure logger")
	}
	log.Logger = zl

	log.Info().Str("version", appVersion).Msg("Starting synapse-admin")

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}

	log.Info().Msg("Server exited")
}
