package gclog

import "os"

// New constructs a Logger for the named backend ("logrus" or "zerolog"),
// defaulting to logrus for any other value.
func New(backend, level, format string) Logger {
	if backend == "zerolog" {
		return NewZerologLogger(level)
	}
	return NewLogrusLogger(level, format)
}

var global Logger

// InitGlobal initializes the package-level global logger, selecting the
// backend from the Z_LOG_BACKEND environment variable ("logrus" by
// default, "zerolog" opt-in).
func InitGlobal(level, format string) {
	global = New(os.Getenv("Z_LOG_BACKEND"), level, format)
}

// Global returns the package-level logger, defaulting to an info/json
// logrus logger if InitGlobal was never called.
func Global() Logger {
	if global == nil {
		global = New(os.Getenv("Z_LOG_BACKEND"), "info", "json")
	}
	return global
}
