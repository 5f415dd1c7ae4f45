package main

import (
	"os"

	"go.uber.org/zap"

	styleforge "github.com/styleforge/styleforge/cmd/styleforge"
)

func main() {
	logger := zap.Must(zap.NewProduction())

	executionErr := styleforge.Execute(logger)
	if executionErr != nil {
		logger.Error("command execution failed", zap.Error(executionErr))
		_ = logger.Sync()
		os.Exit(1)
	}

	syncErr := logger.Sync()
	if syncErr != nil {
		os.Exit(1)
	}
}
