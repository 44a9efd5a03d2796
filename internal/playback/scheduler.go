package playback

import (
	"sync"
	"time"
)

// Cancel stops a scheduled callback. It is safe to call more than once.
type Cancel func()

// Scheduler fires fn every interval until cancelled.
type Scheduler interface {
	Schedule(fn func(), interval time.Duration) Cancel
}

// TimerScheduler runs callbacks on the wall clock. Each schedule owns a
// ticker goroutine; callbacks from one schedule never overlap.
type TimerScheduler struct{}

func NewTimerScheduler() *TimerScheduler { return &TimerScheduler{} }

func (TimerScheduler) Schedule(fn func(), interval time.Duration) Cancel {
	if interval <= 0 {
		interval = time.Millisecond
	}
	stop := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}

type manualTimer struct {
	fn        func()
	interval  time.Duration
	next      time.Duration
	cancelled bool
}

// ManualScheduler is a fake clock. Nothing fires until Advance moves time
// forward; due callbacks then run synchronously on the caller's goroutine,
// in due order.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (m *ManualScheduler) Schedule(fn func(), interval time.Duration) Cancel {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	m.mu.Lock()
	t := &manualTimer{fn: fn, interval: interval, next: m.now + interval}
	m.timers = append(m.timers, t)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		t.cancelled = true
		m.mu.Unlock()
	}
}

// Advance moves the clock forward by d and fires every callback that falls
// due, including repeats of the same schedule.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.prune()
			m.mu.Unlock()
			return
		}
		m.now = next.next
		next.next += next.interval
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

func (m *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var due *manualTimer
	for _, t := range m.timers {
		if t.cancelled || t.next > target {
			continue
		}
		if due == nil || t.next < due.next {
			due = t
		}
	}
	return due
}

func (m *ManualScheduler) prune() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	clear(m.timers[len(live):])
	m.timers = live
}

// Now is the fake time elapsed since construction.
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending counts live schedules.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}
