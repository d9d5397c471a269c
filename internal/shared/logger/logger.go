package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// GetLogger returns the process wide zap.Logger, built once.
// APP_ENV=production switches to the JSON production config and LOG_LEVEL
// overrides the level of either.
func GetLogger() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		if os.Getenv("APP_ENV") == "production" {
			cfg = zap.NewProductionConfig()
		}
		if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
			if level, err := zap.ParseAtomicLevel(lvl); err == nil {
				cfg.Level = level
			}
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			panic("failed logger setup : " + err.Error())
		}
	})
	return logger
}
