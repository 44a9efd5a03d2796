package playback

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestManualSchedulerOrdering(t *testing.T) {
	m := NewManualScheduler()
	var fired strings.Builder

	m.Schedule(func() { fired.WriteString("a") }, 2*time.Second)
	m.Schedule(func() { fired.WriteString("b") }, 3*time.Second)

	m.Advance(6 * time.Second)

	if got := fired.String(); got != "abaab" {
		t.Errorf("expected firing order abaab, got %s", got)
	}
	if m.Now() != 6*time.Second {
		t.Errorf("expected clock at 6s, got %v", m.Now())
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	m := NewManualScheduler()
	count := 0
	var cancel Cancel
	cancel = m.Schedule(func() {
		count++
		if count == 2 {
			cancel()
		}
	}, time.Second)

	m.Advance(10 * time.Second)

	if count != 2 {
		t.Errorf("expected cancellation from inside the callback to stop it at 2, got %d", count)
	}
	if m.Pending() != 0 {
		t.Errorf("expected no pending schedules, got %d", m.Pending())
	}
	cancel()
}

func TestTimerScheduler(t *testing.T) {
	var count atomic.Int32
	fired := make(chan struct{}, 16)

	cancel := NewTimerScheduler().Schedule(func() {
		count.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	}, time.Millisecond)

	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("timer did not fire")
		}
	}

	cancel()
	cancel()
	stopped := count.Load()
	time.Sleep(20 * time.Millisecond)

	if got := count.Load(); got > stopped+1 {
		t.Errorf("expected timer to stop after cancel, fired %d more times", got-stopped)
	}
}
