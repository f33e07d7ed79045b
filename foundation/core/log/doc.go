// Package log provides structured logging for Pascal.
//
// A Logger is immutable from the caller's point of view: WithField,
// WithFields, WithRequestID and WithSessionID return a new Logger that
// carries the extra context. Entries are written by a Formatter
// (json, text, console, logfmt) to any io.Writer.
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText, Output: os.Stderr})
//	logger.WithField("component", "calc-engine").Debug("tokenized", log.Fields{"tokens": 3})
//
// A Timer measures an operation and logs its duration when stopped.
package log
