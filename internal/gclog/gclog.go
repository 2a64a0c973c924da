// Package gclog defines the structured logging port used throughout the
// director. The backend (logrus by default, zerolog via Z_LOG_BACKEND)
// stays swappable behind the Logger interface.
package gclog

// Field is a single structured logging key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the structured logging port every component depends on.
type Logger interface {
	Trace(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
}

// String creates a string-valued logging field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int-valued logging field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint creates a uint-valued logging field.
func Uint(key string, value uint) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64-valued logging field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool-valued logging field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates a logging field for an error value under the key "error".
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Any creates a logging field with an arbitrary value.
func Any(key string, value interface{}) Field { return Field{Key: key, Value: value} }
