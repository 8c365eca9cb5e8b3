// Package log provides the relay's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that feeds the configured
// formatter/output pipeline, so output stays consistent across the codebase
// while remaining compatible with the slog ecosystem.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("dispatch"), log.Str("ledger", addr))
//	l.Info("listener started", log.Str("sub", id))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config (level and
// format), typically populated from RELAY_LOG_LEVEL and RELAY_LOG_FORMAT.
// RedirectStdLog routes standard-library log output (used by Pebble) through
// the facade.
package log
