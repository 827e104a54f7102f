package observability

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	entry *logrus.Entry
}

func NewLogger(level, format string) *Logger {
	return newLogger(os.Stdout, level, format)
}

// NewLoggerTo builds a logger that writes to out instead of stdout.
func NewLoggerTo(out io.Writer, level, format string) *Logger {
	return newLogger(out, level, format)
}

func newLogger(out io.Writer, level, format string) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Logger{entry: logrus.NewEntry(base).WithField("service", "jobboard")}
}

func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

func (l *Logger) Warn(msg string) {
	l.entry.Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

// WithContext attaches the request id, when present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return &Logger{entry: l.entry.WithField("request_id", id)}
	}
	return l
}

var defaultLogger = NewLogger("info", "json")

func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

func Default() *Logger {
	return defaultLogger
}

// Printf lets the logger back libraries that expect a printf-style writer.
func (l *Logger) Printf(format string, args ...any) {
	l.entry.Infof(format, args...)
}
