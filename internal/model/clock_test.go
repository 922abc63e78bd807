package model

import (
	"testing"
	"time"
)

func TestClockCountsOnlyWhileRunning(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewClock(time.Minute)
	c.now = func() time.Time { return now }

	c.Start()
	now = now.Add(10 * time.Second)
	if got := c.TimeLeft(); got != 50*time.Second {
		t.Fatalf("running: expected 50s, got %s", got)
	}
	c.Stop()
	now = now.Add(time.Hour)
	if got := c.TimeLeft(); got != 50*time.Second {
		t.Fatalf("stopped: expected 50s, got %s", got)
	}
	if c.IsRunning() {
		t.Fatal("clock still running")
	}

	c.Stop()
	if got := c.TimeLeft(); got != 50*time.Second {
		t.Fatalf("double stop changed time: %s", got)
	}
}
