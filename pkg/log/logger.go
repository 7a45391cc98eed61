// Package log configures structured logging for mlkit. It installs a JSON
// slog handler whose records carry the stack traces attached by
// pkg/errors, and it provides the zerolog writer the warning system
// reports through.
package log

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// SetupLogger installs the process-wide slog logger.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		Level: ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SetupWarningLogger routes warnings raised through pkg/errors to a zerolog
// console logger on stderr. Warning types that implement
// zerolog.LogObjectMarshaler are logged with their structured fields.
func SetupWarningLogger() {
	warnLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	errors.SetWarningHandler(func(w error) {
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			warnLog.Warn().EmbedObject(obj).Msg(w.Error())
			return
		}
		warnLog.Warn().Msg(w.Error())
	})
}
