// Package logging configures structured logging for the lifecycle
// engine.
//
// # Overview
//
// The package builds log/slog loggers from declarative configuration:
// a minimum level, an output format (JSON or text), and an optional
// source-location flag. Setup installs the result as the process-wide
// default so that the component loggers used across the codebase
// (slog.Default().With("component", ...)) inherit it.
//
// # Usage
//
//	logger, err := logging.Setup(logging.Config{
//		Level:  "info",
//		Format: "json",
//	})
//	if err != nil {
//		return err
//	}
//	logger.Info("engine starting")
package logging
