// Package logger provides context-aware structured logging on top of logrus.
// Commands attach a logger entry to their context; packages retrieve it with
// G and fall back to the global entry when none is set.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// G is a convenience alias for GetLogger.
	G = GetLogger
	// L is the global logger entry used when no logger is found in context.
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger attaches a logger entry to the context, making it retrievable
// via GetLogger.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger.WithContext(ctx))
}

// GetLogger retrieves the logger entry from the context, falling back to the
// global entry L with the context attached.
func GetLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(loggerKey{})
	if logger == nil {
		return L.WithContext(ctx)
	}
	return logger.(*logrus.Entry)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	setFormat(l, "text")
	return l
}

func setFormat(logger *logrus.Logger, format string) {
	switch format {
	case "json":
		logger.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "logLevel",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	default:
		logger.Formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		}
	}
}

// SetLogLevel sets the level of the global logger.
func SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	L.Logger.SetLevel(logLevel)
	return nil
}

// SetLogFormat sets the output format of the global logger ("text" or "json").
func SetLogFormat(format string) {
	setFormat(L.Logger, format)
}

// SetLogOutput sets the output destination of the global logger.
func SetLogOutput(w io.Writer) {
	L.Logger.SetOutput(w)
}
