// Package log provides a thin wrapper around zerolog with leveled, formatted
// and structured (key-value) logging helpers used across the repo.
package log

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Log levels accepted by Init.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const logTestWriterName = "_testwriter"

var (
	logger zerolog.Logger
	level  string

	// logTestWriter is the writer used when Init is called with the
	// output set to logTestWriterName. Used by tests and benchmarks.
	logTestWriter io.Writer = io.Discard

	// panicOnInvalidChars enables panicking when a log message contains
	// invalid characters. Set via the LOG_PANIC_ON_INVALIDCHARS env var;
	// meant for testing purposes only.
	panicOnInvalidChars = os.Getenv("LOG_PANIC_ON_INVALIDCHARS") == "true"
)

func init() {
	// Provide a sane default so packages can log before Init is called.
	Init(LogLevelInfo, "stderr", nil)
}

// Init initializes the global logger with the given level and output. The
// output may be "stdout", "stderr" or a file path. If errorOutput is not
// nil, messages of level error or above are duplicated to it.
func Init(logLevel, output string, errorOutput io.Writer) {
	var out io.Writer
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case logTestWriterName:
		out = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			panic(fmt.Sprintf("cannot open log output %q: %v", output, err))
		}
		out = f
	}
	out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339Nano}
	if errorOutput != nil {
		out = zerolog.MultiLevelWriter(out, errLevelWriter{errorOutput})
	}
	zl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		panic(fmt.Sprintf("invalid log level %q: %v", logLevel, err))
	}
	logger = zerolog.New(out).Level(zl).With().Timestamp().Logger()
	level = logLevel
	Infof("logger initialized on level %s", logLevel)
}

// Level returns the log level set by the last call to Init.
func Level() string { return level }

type errLevelWriter struct{ w io.Writer }

func (e errLevelWriter) Write(p []byte) (int, error) { return len(p), nil }

func (e errLevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l >= zerolog.ErrorLevel {
		return e.w.Write(p)
	}
	return len(p), nil
}

func checkInvalidChars(msg string) {
	if panicOnInvalidChars && !utf8.ValidString(msg) {
		panic(fmt.Sprintf("log message with invalid chars: %q", msg))
	}
}

func send(ev *zerolog.Event, args ...any) {
	msg := fmt.Sprint(args...)
	checkInvalidChars(msg)
	ev.Msg(msg)
}

func sendf(ev *zerolog.Event, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkInvalidChars(msg)
	ev.Msg(msg)
}

func sendw(ev *zerolog.Event, msg string, kv ...any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		ev = ev.Interface(key, kv[i+1])
	}
	checkInvalidChars(msg)
	ev.Msg(msg)
}

// Debug logs at debug level.
func Debug(args ...any) { send(logger.Debug(), args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) { sendf(logger.Debug(), format, args...) }

// Debugw logs a message with key-value pairs at debug level.
func Debugw(msg string, kv ...any) { sendw(logger.Debug(), msg, kv...) }

// Info logs at info level.
func Info(args ...any) { send(logger.Info(), args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) { sendf(logger.Info(), format, args...) }

// Infow logs a message with key-value pairs at info level.
func Infow(msg string, kv ...any) { sendw(logger.Info(), msg, kv...) }

// Warn logs at warn level.
func Warn(args ...any) { send(logger.Warn(), args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) { sendf(logger.Warn(), format, args...) }

// Warnw logs a message with key-value pairs at warn level.
func Warnw(msg string, kv ...any) { sendw(logger.Warn(), msg, kv...) }

// Error logs at error level.
func Error(args ...any) { send(logger.Error(), args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) { sendf(logger.Error(), format, args...) }

// Errorw logs an error with key-value pairs at error level.
func Errorw(err error, msg string, kv ...any) {
	sendw(logger.Error().Err(err), msg, kv...)
}

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...any) { sendf(logger.Fatal(), format, args...) }
