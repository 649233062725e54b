package utils

import (
	"os"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/config"
)

// SetupStdLogger creates a logger from the resolved CLI config values and
// installs it as the package default. When a log config file is given its
// filter rules replace the plain logger.
func SetupStdLogger() *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogConfig != "" {
		if cfg, err := log.LoadConfig(config.LogConfig); err == nil {
			if filtered, ferr := log.NewWithFilters(
				os.Stderr,
				parseLogLevel(cfg.DefaultLevel, log.InfoLevel),
				cfg.Filters,
				log.AddCallerSkip(1)); ferr == nil {
				logger = filtered
			} else {
				logger.Warn("invalid log filter rules", log.ErrorField(ferr))
			}
		} else {
			logger.Warn("could not load log config", log.ErrorField(err))
		}
	}
	log.ResetDefault(logger)
	return logger
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}
