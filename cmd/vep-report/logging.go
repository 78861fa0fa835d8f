package main

import (
	"fmt"

	"go.uber.org/zap"
)

func createLogger(debug bool) (*zap.Logger, error) {
	var loggerCfg zap.Config
	if debug {
		loggerCfg = zap.NewDevelopmentConfig()
	} else {
		loggerCfg = zap.NewProductionConfig()
		loggerCfg.DisableStacktrace = true
	}

	logger, err := loggerCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.Named("vep-report"), nil
}
