// Package logger provides a structured logging interface for the auto-scroller.
//
// It wraps zerolog behind a small Logger interface with field support, a
// global instance configured from config.LoggingConfig, and a capturing
// TestLogger for assertions in tests.
//
//	logger.Initialize(&cfg.Logging)
//	logger.WithField("document", name).Info("scrolling started")
//
// When a log file is configured, output goes only to that file; otherwise a
// colored console writer on stderr is used.
package logger
