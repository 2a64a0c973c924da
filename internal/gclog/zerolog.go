package gclog

import (
	"os"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using zerolog. Selected in place of the
// logrus backend when Z_LOG_BACKEND=zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a Logger backed by zerolog at the given level.
func NewZerologLogger(level string) Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	return &ZerologLogger{logger: l}
}

func (z *ZerologLogger) event(e *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		e = e.Interface(f.Key, f.Value)
	}
	e.Msg(msg)
}

func (z *ZerologLogger) Trace(msg string, fields ...Field) { z.event(z.logger.Trace(), msg, fields) }
func (z *ZerologLogger) Debug(msg string, fields ...Field) { z.event(z.logger.Debug(), msg, fields) }
func (z *ZerologLogger) Info(msg string, fields ...Field)  { z.event(z.logger.Info(), msg, fields) }
func (z *ZerologLogger) Warn(msg string, fields ...Field)  { z.event(z.logger.Warn(), msg, fields) }
func (z *ZerologLogger) Error(msg string, fields ...Field) { z.event(z.logger.Error(), msg, fields) }
func (z *ZerologLogger) Fatal(msg string, fields ...Field) { z.event(z.logger.Fatal(), msg, fields) }

func (z *ZerologLogger) WithFields(fields ...Field) Logger {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{logger: ctx.Logger()}
}
