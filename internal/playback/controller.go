package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/allvis/internal/logging"
	"github.com/san-kum/allvis/internal/physics"
)

type State int

const (
	Idle State = iota
	Paused
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

const (
	DefaultStepInterval = time.Second
	DefaultTickInterval = time.Second / 60
	DefaultTimestep     = 1.0 / 60
)

// Snapshot is the observable state of a controller at one instant.
type Snapshot struct {
	State  State
	Cursor int
	// Length is the number of steps in a trace, or 0 for an unbounded model.
	Length int
	// Elapsed is simulated seconds for a model and cursor*interval for a
	// trace.
	Elapsed float64
	// Ticks counts timer-driven advances since the last reset.
	Ticks int
}

// Recorder receives controller events for metrics.
type Recorder interface {
	RecordTransition(from, to string)
	RecordAdvance(kind string)
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithInterval sets the wall-clock time between timer advances.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTimestep sets the simulated seconds per tick of a continuous model.
func WithTimestep(dt float64) Option {
	return func(c *Controller) {
		if dt > 0 {
			c.dt = dt
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

type observer struct {
	id int
	fn func(Snapshot)
}

// Controller moves a cursor over a trace or a model. All methods are safe
// for concurrent use; timer callbacks are serialized with them.
type Controller struct {
	mu sync.Mutex

	src    source
	kind   string
	state  State
	cursor int
	ticks  int

	scheduler Scheduler
	interval  time.Duration
	dt        float64
	gen       uint64
	cancel    Cancel

	logger    *slog.Logger
	recorder  Recorder
	observers []observer
	nextID    int
}

func newController(kind string, defaultInterval time.Duration, opts []Option) *Controller {
	c := &Controller{
		kind:     kind,
		interval: defaultInterval,
		dt:       DefaultTimestep,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = NewTimerScheduler()
	}
	return c
}

// NewDiscrete walks a trace of n steps. Lengths below one are treated as
// one, since a trace always has a terminal step.
func NewDiscrete(n int, opts ...Option) *Controller {
	c := newController("discrete", DefaultStepInterval, opts)
	c.src = &discrete{n: max(n, 1), interval: c.interval.Seconds()}
	return c
}

// NewContinuous ticks model by the configured timestep on every advance.
func NewContinuous(model physics.Model, opts ...Option) *Controller {
	c := newController("continuous", DefaultTickInterval, opts)
	c.src = &continuous{model: model, dt: c.dt}
	return c
}

// Play starts the timer. From Finished it rewinds to the first step first.
func (c *Controller) Play() {
	c.mu.Lock()
	switch c.state {
	case Playing:
		c.mu.Unlock()
		return
	case Finished:
		c.rewind()
	}
	if c.atEnd() {
		c.setState(Finished)
	} else {
		c.setState(Playing)
		c.startTimer()
	}
	c.unlockAndPublish()
}

// Pause stops the timer. It is a no-op unless playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != Playing {
		c.mu.Unlock()
		return
	}
	c.stopTimer()
	c.setState(Paused)
	c.unlockAndPublish()
}

// StepForward advances one step. It never moves past the last step of a
// trace, and reaching it finishes playback.
func (c *Controller) StepForward() {
	c.mu.Lock()
	if c.state == Finished {
		c.mu.Unlock()
		return
	}
	c.advance()
	if c.state == Idle {
		c.setState(Paused)
	}
	c.unlockAndPublish()
}

// StepBack moves back one step, never below zero, and always leaves the
// controller paused.
func (c *Controller) StepBack() {
	c.mu.Lock()
	c.stopTimer()
	if c.cursor > 0 {
		c.cursor--
		c.src.seek(c.cursor)
	}
	c.setState(Paused)
	c.unlockAndPublish()
}

// Reset stops the timer and returns to Idle at the first step.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.stopTimer()
	c.rewind()
	c.setState(Idle)
	c.unlockAndPublish()
}

// SetLength swaps in a new trace of n steps. It implies Reset.
func (c *Controller) SetLength(n int) {
	c.mu.Lock()
	c.stopTimer()
	c.src = &discrete{n: max(n, 1), interval: c.interval.Seconds()}
	c.kind = "discrete"
	c.rewind()
	c.setState(Idle)
	c.unlockAndPublish()
}

// SetModel swaps in a new continuous model. It implies Reset.
func (c *Controller) SetModel(model physics.Model) {
	c.mu.Lock()
	c.stopTimer()
	c.src = &continuous{model: model, dt: c.dt}
	c.kind = "continuous"
	c.rewind()
	c.setState(Idle)
	c.unlockAndPublish()
}

// Close stops the timer without changing state.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopTimer()
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Controller) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.src.elapsed(c.cursor)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe registers fn for every state or cursor change. Callbacks run
// after the controller lock is released, so they may call back into it.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, observer{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, o := range c.observers {
				if o.id == id {
					c.observers = append(c.observers[:i], c.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		State:   c.state,
		Cursor:  c.cursor,
		Length:  c.src.last() + 1,
		Elapsed: c.src.elapsed(c.cursor),
		Ticks:   c.ticks,
	}
}

func (c *Controller) unlockAndPublish() {
	snap := c.snapshot()
	obs := make([]observer, len(c.observers))
	copy(obs, c.observers)
	c.mu.Unlock()

	for _, o := range obs {
		o.fn(snap)
	}
}

func (c *Controller) atEnd() bool {
	last := c.src.last()
	if last >= 0 {
		return c.cursor >= last
	}
	cs, ok := c.src.(*continuous)
	return ok && cs.done()
}

func (c *Controller) rewind() {
	c.cursor = 0
	c.ticks = 0
	c.src.seek(0)
}

// advance moves the cursor by one and finishes at the end of the source.
func (c *Controller) advance() {
	if c.atEnd() {
		c.stopTimer()
		c.setState(Finished)
		return
	}
	done := c.src.advance(c.cursor)
	c.cursor++
	if c.recorder != nil {
		c.recorder.RecordAdvance(c.kind)
	}
	if done {
		c.stopTimer()
		c.setState(Finished)
	}
}

func (c *Controller) startTimer() {
	c.gen++
	gen := c.gen
	c.cancel = c.scheduler.Schedule(func() { c.fire(gen) }, c.interval)
}

func (c *Controller) stopTimer() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != Playing {
		c.mu.Unlock()
		return
	}
	c.ticks++
	c.advance()
	c.unlockAndPublish()
}

func (c *Controller) setState(to State) {
	from := c.state
	c.state = to
	if from == to {
		return
	}
	c.logger.Debug("playback transition",
		"kind", c.kind,
		"from", from.String(),
		"to", to.String(),
		"cursor", c.cursor,
	)
	if c.recorder != nil {
		c.recorder.RecordTransition(from.String(), to.String())
	}
}
