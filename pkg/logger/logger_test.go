package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLogger_WithContextLogger(t *testing.T) {
	customLogger := logrus.NewEntry(logrus.New()).WithField("test", "value")
	ctx := WithLogger(context.Background(), customLogger)

	retrieved := G(ctx)
	assert.Equal(t, "value", retrieved.Data["test"])
}

func TestGetLogger_WithoutContextLogger(t *testing.T) {
	retrieved := G(context.Background())

	assert.NotNil(t, retrieved)
	assert.Equal(t, L.Logger, retrieved.Logger)
}

func TestLoggerChaining(t *testing.T) {
	ctx := WithLogger(context.Background(), logrus.NewEntry(logrus.New()).WithField("command", "validate"))

	ctx = WithLogger(ctx, G(ctx).WithField("path", "reviewer.md"))

	final := G(ctx)
	assert.Equal(t, "validate", final.Data["command"])
	assert.Equal(t, "reviewer.md", final.Data["path"])
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	setFormat(logger, "json")

	ctx := WithLogger(context.Background(), logrus.NewEntry(logger))
	G(ctx).Info("test message")

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "info", logEntry["logLevel"])
	assert.Equal(t, "test message", logEntry["message"])

	timestamp, ok := logEntry["timestamp"].(string)
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339Nano, timestamp)
	assert.NoError(t, err)
}

func TestSetLogLevel(t *testing.T) {
	original := L.Logger.GetLevel()
	defer L.Logger.SetLevel(original)

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	assert.Error(t, SetLogLevel("nonsense"))
}
