package main

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pbanos/shrub/internal/logging"
)

// setupLogging puts a logger tagged with a fresh run id in the command context.
func (rcc *rootCmdConfig) setupLogging() {
	level := rcc.LogLevel
	if rcc.verbose {
		level = "debug"
	}
	logger := logging.NewLogger(level, rcc.LogDev).With("run", uuid.NewString())
	rcc.ctx = logging.WithLogger(rcc.ctx, logger)
}

func (rcc *rootCmdConfig) logger() *zap.SugaredLogger {
	return logging.FromContext(rcc.ctx)
}
