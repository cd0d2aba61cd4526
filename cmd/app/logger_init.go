package main

import (
	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// initLogger sets up stdout logging for the one-shot commands.
// serve logs to a session file as well, see bootstrap.SetupLogger.
func initLogger(cfg *config.Config) {
	logger.InitLogger(logger.ForEnvironment(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment))
}
