package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestErrorWithTraceIDReusesRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	id := ErrorWithTraceID(l, Fields{"request_id": "01HQ"}, "boom")
	assert.Equal(t, "01HQ", id)
	assert.Contains(t, buf.String(), `"trace_id":"01HQ"`)
}

func TestErrorWithTraceIDGeneratesID(t *testing.T) {
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})

	id := ErrorWithTraceID(l, Fields{"request_id": "unknown"}, "boom")
	assert.Len(t, id, 36)
	assert.NotEqual(t, "unknown", id)
}

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, levelFromEnv(""))
	assert.Equal(t, logrus.WarnLevel, levelFromEnv("warn"))
	assert.Equal(t, logrus.DebugLevel, levelFromEnv("loud"))
}
