// Package log provides the global structured logger used across the
// repository, implemented on top of zerolog. It exposes printf-style,
// print-style and key-value logging helpers at the usual levels.
package log

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Available log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const logTestWriterName = "_testWriter"

var (
	logger zerolog.Logger
	level  string

	// logTestWriter is the destination used when Init is called with
	// logTestWriterName, for tests and benchmarks.
	logTestWriter io.Writer = io.Discard

	// panicOnInvalidChars makes the formatted helpers panic when a message
	// contains bytes that are not valid UTF-8, to catch %s misuse of raw
	// binary values during development.
	panicOnInvalidChars = false
)

func init() {
	// A usable default so packages can log before Init is called.
	Init(LogLevelInfo, "stderr", nil)
}

// Init initializes the global logger with the given level and output. The
// output can be "stdout", "stderr" or a file path. If errorOutput is not nil,
// entries with level error or above are duplicated to it.
func Init(logLevel, output string, errorOutput io.Writer) {
	var out io.Writer
	switch output {
	case "stdout":
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}
	case "stderr":
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339Nano}
	case logTestWriterName:
		out = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			panic(fmt.Sprintf("cannot open log output %q: %v", output, err))
		}
		out = f
	}
	if errorOutput != nil {
		out = zerolog.MultiLevelWriter(out, errorLevelWriter{errorOutput})
	}
	zl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		panic(fmt.Sprintf("invalid log level %q: %v", logLevel, err))
	}
	logger = zerolog.New(out).Level(zl).With().Timestamp().Logger()
	level = logLevel
}

// errorLevelWriter forwards only entries at error level or above.
type errorLevelWriter struct {
	w io.Writer
}

func (lw errorLevelWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func (lw errorLevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < zerolog.ErrorLevel {
		return len(p), nil
	}
	return lw.w.Write(p)
}

// Logger returns the global zerolog logger.
func Logger() *zerolog.Logger {
	return &logger
}

// Level returns the level the logger was initialized with.
func Level() string {
	return level
}

func checkInvalidChars(msg string) string {
	if panicOnInvalidChars && !utf8.ValidString(msg) {
		panic(fmt.Sprintf("log message with invalid chars: %q", msg))
	}
	return msg
}

func withFields(ev *zerolog.Event, keyvalues ...any) *zerolog.Event {
	for i := 0; i+1 < len(keyvalues); i += 2 {
		key, ok := keyvalues[i].(string)
		if !ok {
			key = fmt.Sprint(keyvalues[i])
		}
		ev = ev.Interface(key, keyvalues[i+1])
	}
	return ev
}

// Debug logs the arguments at debug level.
func Debug(args ...any) { logger.Debug().Msg(checkInvalidChars(fmt.Sprint(args...))) }

// Info logs the arguments at info level.
func Info(args ...any) { logger.Info().Msg(checkInvalidChars(fmt.Sprint(args...))) }

// Warn logs the arguments at warn level.
func Warn(args ...any) { logger.Warn().Msg(checkInvalidChars(fmt.Sprint(args...))) }

// Error logs the arguments at error level.
func Error(args ...any) { logger.Error().Msg(checkInvalidChars(fmt.Sprint(args...))) }

// Debugf logs a formatted message at debug level.
func Debugf(template string, args ...any) {
	logger.Debug().Msg(checkInvalidChars(fmt.Sprintf(template, args...)))
}

// Infof logs a formatted message at info level.
func Infof(template string, args ...any) {
	logger.Info().Msg(checkInvalidChars(fmt.Sprintf(template, args...)))
}

// Warnf logs a formatted message at warn level.
func Warnf(template string, args ...any) {
	logger.Warn().Msg(checkInvalidChars(fmt.Sprintf(template, args...)))
}

// Errorf logs a formatted message at error level.
func Errorf(template string, args ...any) {
	logger.Error().Msg(checkInvalidChars(fmt.Sprintf(template, args...)))
}

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(template string, args ...any) {
	logger.Fatal().Msg(checkInvalidChars(fmt.Sprintf(template, args...)))
}

// Debugw logs a message with key-value fields at debug level.
func Debugw(msg string, keyvalues ...any) {
	withFields(logger.Debug(), keyvalues...).Msg(checkInvalidChars(msg))
}

// Infow logs a message with key-value fields at info level.
func Infow(msg string, keyvalues ...any) {
	withFields(logger.Info(), keyvalues...).Msg(checkInvalidChars(msg))
}

// Warnw logs a message with key-value fields at warn level.
func Warnw(msg string, keyvalues ...any) {
	withFields(logger.Warn(), keyvalues...).Msg(checkInvalidChars(msg))
}

// Errorw logs a message with key-value fields at error level.
func Errorw(msg string, keyvalues ...any) {
	withFields(logger.Error(), keyvalues...).Msg(checkInvalidChars(msg))
}
