package supervisor

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/glasspane/glasspane/internal/frame"
)

func newTestWatchdog(cell *frame.Cell, staleAfter time.Duration) *Watchdog {
	return NewWatchdog(WatchdogConfig{
		Interval:   time.Millisecond,
		StaleAfter: staleAfter,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, cell)
}

func TestWatchdog_HealthyWhileFramesAdvance(t *testing.T) {
	cell := &frame.Cell{}
	w := newTestWatchdog(cell, 50*time.Millisecond)

	for seq := uint64(1); seq <= 3; seq++ {
		cell.Publish(&frame.Frame{Seq: seq})
		w.CheckNow()
		if !w.Healthy() {
			t.Fatalf("watchdog unhealthy at seq %d", seq)
		}
	}
}

func TestWatchdog_MarksStaleAndRecovers(t *testing.T) {
	cell := &frame.Cell{}
	w := newTestWatchdog(cell, 10*time.Millisecond)

	cell.Publish(&frame.Frame{Seq: 1})
	w.CheckNow()
	if !w.Healthy() {
		t.Fatal("watchdog unhealthy right after a frame")
	}

	// Same seq past the stale window flips it.
	time.Sleep(25 * time.Millisecond)
	w.CheckNow()
	if w.Healthy() {
		t.Fatal("watchdog still healthy after stale window with no new frame")
	}

	// A fresh frame recovers it.
	cell.Publish(&frame.Frame{Seq: 2})
	w.CheckNow()
	if !w.Healthy() {
		t.Fatal("watchdog did not recover after a new frame")
	}
}

func TestWatchdog_EmptyCellGoesStale(t *testing.T) {
	cell := &frame.Cell{}
	w := newTestWatchdog(cell, 10*time.Millisecond)

	w.CheckNow()
	if !w.Healthy() {
		t.Fatal("watchdog unhealthy before the stale window elapsed")
	}

	time.Sleep(25 * time.Millisecond)
	w.CheckNow()
	if w.Healthy() {
		t.Fatal("watchdog healthy with no frames past the stale window")
	}
}
