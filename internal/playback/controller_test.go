package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/playback"
)

// captureScheduler hands the callback to the test instead of running it.
type captureScheduler struct {
	fn func()
}

func (s *captureScheduler) Schedule(fn func(), _ time.Duration) playback.Cancel {
	s.fn = fn
	return func() {}
}

type countingRecorder struct {
	transitions []string
	advances    map[string]int
}

func (r *countingRecorder) RecordTransition(from, to string) {
	r.transitions = append(r.transitions, from+"->"+to)
}

func (r *countingRecorder) RecordAdvance(kind string) {
	if r.advances == nil {
		r.advances = map[string]int{}
	}
	r.advances[kind]++
}

var _ = Describe("Controller", func() {
	var (
		clock *playback.ManualScheduler
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		clock = playback.NewManualScheduler()
		ctrl = playback.NewDiscrete(3, playback.WithScheduler(clock))
	})

	AfterEach(func() {
		ctrl.Close()
	})

	Describe("a discrete trace", func() {
		It("starts idle at the first step", func() {
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.Cursor()).To(Equal(0))
			Expect(ctrl.Snapshot().Length).To(Equal(3))
		})

		It("advances once per interval and finishes on the last step", func() {
			ctrl.Play()
			Expect(ctrl.State()).To(Equal(playback.Playing))

			clock.Advance(time.Second)
			Expect(ctrl.Cursor()).To(Equal(1))
			Expect(ctrl.State()).To(Equal(playback.Playing))

			clock.Advance(time.Second)
			Expect(ctrl.Cursor()).To(Equal(2))
			Expect(ctrl.State()).To(Equal(playback.Finished))
			Expect(clock.Pending()).To(BeZero())

			clock.Advance(10 * time.Second)
			Expect(ctrl.Cursor()).To(Equal(2))
			Expect(ctrl.Snapshot().Ticks).To(Equal(2))
		})

		It("stops advancing as soon as Pause returns", func() {
			ctrl.Play()
			clock.Advance(time.Second)
			ctrl.Pause()

			clock.Advance(5 * time.Second)
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(ctrl.Cursor()).To(Equal(1))
			Expect(clock.Pending()).To(BeZero())
		})

		It("treats a second Pause as a no-op", func() {
			ctrl.Play()
			clock.Advance(time.Second)
			ctrl.Pause()
			first := ctrl.Snapshot()
			ctrl.Pause()
			Expect(ctrl.Snapshot()).To(Equal(first))
		})

		It("ignores a callback that was already dequeued when paused", func() {
			capture := &captureScheduler{}
			c := playback.NewDiscrete(5, playback.WithScheduler(capture))
			c.Play()
			stale := capture.fn
			c.Pause()

			stale()
			Expect(c.Cursor()).To(Equal(0))
			Expect(c.State()).To(Equal(playback.Paused))
		})

		It("rewinds to the first step when played after finishing", func() {
			ctrl.Play()
			clock.Advance(2 * time.Second)
			Expect(ctrl.State()).To(Equal(playback.Finished))

			ctrl.Play()
			Expect(ctrl.Cursor()).To(Equal(0))
			Expect(ctrl.State()).To(Equal(playback.Playing))

			clock.Advance(time.Second)
			Expect(ctrl.Cursor()).To(Equal(1))
		})

		It("caps StepForward at the last step", func() {
			for i := 0; i < 5; i++ {
				ctrl.StepForward()
			}
			Expect(ctrl.Cursor()).To(Equal(2))
			Expect(ctrl.State()).To(Equal(playback.Finished))
		})

		It("pauses on the first manual step from idle", func() {
			ctrl.StepForward()
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(ctrl.Cursor()).To(Equal(1))
		})

		It("keeps playing after a manual step mid-trace", func() {
			c := playback.NewDiscrete(10, playback.WithScheduler(clock))
			c.Play()
			c.StepForward()
			Expect(c.State()).To(Equal(playback.Playing))
			clock.Advance(time.Second)
			Expect(c.Cursor()).To(Equal(2))
			c.Close()
		})

		It("forces Paused on StepBack and floors at zero", func() {
			ctrl.StepBack()
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(ctrl.Cursor()).To(Equal(0))

			ctrl.Play()
			clock.Advance(2 * time.Second)
			ctrl.StepBack()
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(ctrl.Cursor()).To(Equal(1))
			Expect(clock.Pending()).To(BeZero())
		})

		It("resets to idle and cancels the timer", func() {
			ctrl.Play()
			clock.Advance(time.Second)
			ctrl.Reset()

			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.Cursor()).To(Equal(0))
			clock.Advance(3 * time.Second)
			Expect(ctrl.Cursor()).To(Equal(0))
		})

		It("resets when the instance changes mid-play", func() {
			ctrl.Play()
			clock.Advance(time.Second)
			ctrl.SetLength(7)

			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.Snapshot().Length).To(Equal(7))
			clock.Advance(3 * time.Second)
			Expect(ctrl.Cursor()).To(Equal(0))
		})

		It("finishes immediately for a single-step trace", func() {
			c := playback.NewDiscrete(1, playback.WithScheduler(clock))
			c.Play()
			Expect(c.State()).To(Equal(playback.Finished))
			Expect(clock.Pending()).To(BeZero())
		})

		It("reports elapsed time from the interval", func() {
			c := playback.NewDiscrete(4, playback.WithScheduler(clock), playback.WithInterval(500*time.Millisecond))
			c.Play()
			clock.Advance(time.Second)
			Expect(c.Cursor()).To(Equal(2))
			Expect(c.Elapsed()).To(BeNumerically("~", 1.0, 1e-9))
			c.Close()
		})
	})

	Describe("observers", func() {
		It("publishes every change until unsubscribed", func() {
			var seen []playback.Snapshot
			unsubscribe := ctrl.Subscribe(func(s playback.Snapshot) {
				seen = append(seen, s)
				Expect(ctrl.Cursor()).To(Equal(s.Cursor))
			})

			ctrl.Play()
			clock.Advance(time.Second)
			unsubscribe()
			unsubscribe()
			clock.Advance(time.Second)

			Expect(seen).To(HaveLen(2))
			Expect(seen[0].State).To(Equal(playback.Playing))
			Expect(seen[1].Cursor).To(Equal(1))
		})
	})

	Describe("a recorder", func() {
		It("sees transitions and advances", func() {
			rec := &countingRecorder{}
			c := playback.NewDiscrete(3, playback.WithScheduler(clock), playback.WithRecorder(rec))
			c.Play()
			clock.Advance(2 * time.Second)

			Expect(rec.transitions).To(Equal([]string{"idle->playing", "playing->finished"}))
			Expect(rec.advances).To(HaveKeyWithValue("discrete", 2))
		})
	})

	Describe("a continuous model", func() {
		var model *physics.Collisions

		BeforeEach(func() {
			model = physics.NewCollisions(physics.DefaultCollisionParams(), physics.DefaultBodies())
			ctrl = playback.NewContinuous(model,
				playback.WithScheduler(clock),
				playback.WithInterval(10*time.Millisecond),
				playback.WithTimestep(0.01),
			)
		})

		It("ticks the model once per interval and never finishes", func() {
			ctrl.Play()
			clock.Advance(100 * time.Millisecond)

			Expect(ctrl.Cursor()).To(Equal(10))
			Expect(ctrl.State()).To(Equal(playback.Playing))
			Expect(ctrl.Elapsed()).To(BeNumerically("~", 0.1, 1e-9))
			Expect(ctrl.Snapshot().Length).To(BeZero())
		})

		It("steps back by replaying from reset", func() {
			ctrl.Play()
			clock.Advance(100 * time.Millisecond)
			pos := model.Bodies[0].Pos
			ctrl.StepForward()
			ctrl.StepBack()

			Expect(ctrl.Cursor()).To(Equal(10))
			Expect(model.Time()).To(BeNumerically("~", 0.1, 1e-9))
			Expect(model.Bodies[0].Pos.Equal(pos, 1e-12)).To(BeTrue())
		})

		It("resets the model", func() {
			ctrl.StepForward()
			ctrl.Reset()
			Expect(model.Time()).To(BeZero())
		})

		It("finishes when the model is done", func() {
			params := physics.DefaultProjectileParams()
			params.Speed = 5
			p, err := physics.NewProjectile(params)
			Expect(err).NotTo(HaveOccurred())
			ctrl.SetModel(p)

			ctrl.Play()
			clock.Advance(10 * time.Second)

			Expect(ctrl.State()).To(Equal(playback.Finished))
			Expect(p.Landed()).To(BeTrue())
			Expect(clock.Pending()).To(BeZero())
		})
	})
})
