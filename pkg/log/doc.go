// Package log provides a logging abstraction for beacon components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. A zerolog adapter is provided for the CLI and a
// no-op logger for tests and library embedding.
//
// # Usage
//
// Use the zerolog adapter with console output on stderr:
//
//	logger, err := log.NewZerologAdapter(log.Options{Level: "debug"})
//
// Or wrap an existing zerolog.Logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Or discard everything:
//
//	logger := log.NewNoopLogger()
package log
