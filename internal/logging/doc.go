// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Log Levels:
//   - Debug: Verbose debugging information
//   - Info: General informational messages
//   - Warn: Warning messages
//   - Error: Error messages
//   - Fatal: Fatal errors (exits process)
//
// Output goes to stderr unless OutputPaths says otherwise: the server
// speaks its protocol on stdout.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	if err != nil {
//	    return err
//	}
//	logger.Info("Server starting", zap.String("cdp", "localhost:9222"))
//	logger.Error("Failed to connect", zap.Error(err))
package logging
