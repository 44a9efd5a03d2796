// Package playback drives a cursor through a finite step trace or a live
// physics model on a fixed cadence.
//
// A [Controller] is a four-state machine (Idle, Paused, Playing, Finished)
// with transport operations mirroring a media player. Time comes from an
// injected [Scheduler]: [TimerScheduler] for the wall clock and
// [ManualScheduler] for tests and for hosts that run their own event loop.
//
// Pause and Reset cancel the pending timer before they return. A callback
// that was already dequeued when the cancel happened sees a stale generation
// and does nothing, so no advance is ever observed after Pause returns.
package playback
