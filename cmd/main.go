// Package main provides the CLI entrypoint for urlcheck.
// It loads configuration, initializes logging and runs the check command.
package main

import (
	"context"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/serrors"

	"go.uber.org/zap"
)

func main() {
	// until the config is loaded, log warnings and errors with development settings
	logger.Setup(logger.DevelopmentEnvironment, false)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	err := checkCommand().ExecuteContext(ctx)
	_ = logger.Get(ctx).Sync()
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if kind := serrors.KindOf(err); kind != nil {
			fields = append(fields, zap.String("kind", kind.Error()))
		}
		logger.Fatal(ctx, "urlcheck failed", fields...)
	}
}
