// Package common holds small helpers shared across pipeline stages.
package common

import (
	"fmt"
	"log/slog"
	"time"
)

// Timer measures the duration of a processing stage.
type Timer struct {
	name  string
	start time.Time
	took  time.Duration
}

// NewTimer starts an unnamed timer.
func NewTimer() *Timer {
	return NewNamedTimer("")
}

// NewNamedTimer starts a timer labelled with a stage name.
func NewNamedTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Stop freezes the timer and returns the elapsed duration.
func (t *Timer) Stop() time.Duration {
	t.took = time.Since(t.start)
	return t.took
}

// Duration returns the elapsed time recorded by Stop.
func (t *Timer) Duration() time.Duration {
	return t.took
}

// Name returns the stage name, empty for unnamed timers.
func (t *Timer) Name() string {
	return t.name
}

func (t *Timer) String() string {
	if t.name == "" {
		return t.took.String()
	}
	return fmt.Sprintf("%s: %s", t.name, t.took)
}

// LogStop stops the timer and logs the stage duration at debug level.
func (t *Timer) LogStop(logger *slog.Logger) time.Duration {
	d := t.Stop()
	if logger != nil {
		logger.Debug("stage complete", "stage", t.name, "duration", d)
	}
	return d
}
