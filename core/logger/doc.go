// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a console encoding suitable for a CLI tool.
//
// # Run Correlation
//
// The WithRunID helper attaches a generated run_id field to the logger, ensuring
// that all logs belonging to one migration run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Migration started")
package logger
