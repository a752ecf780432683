package common

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerStop(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)

	d := timer.Stop()
	assert.Positive(t, d)
	assert.Equal(t, d, timer.Duration())
	assert.Empty(t, timer.Name())
}

func TestNamedTimer(t *testing.T) {
	timer := NewNamedTimer("detection")
	assert.Equal(t, "detection", timer.Name())

	timer.Stop()
	assert.True(t, strings.HasPrefix(timer.String(), "detection: "))
}

func TestUnnamedTimerString(t *testing.T) {
	timer := NewTimer()
	timer.Stop()
	assert.NotContains(t, timer.String(), ":")
}

func TestLogStop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	timer := NewNamedTimer("ocr")
	d := timer.LogStop(logger)
	require.Positive(t, d)

	out := buf.String()
	assert.Contains(t, out, "stage complete")
	assert.Contains(t, out, "stage=ocr")
}

func TestLogStopNilLogger(t *testing.T) {
	timer := NewNamedTimer("detection")
	assert.Positive(t, timer.LogStop(nil))
}
