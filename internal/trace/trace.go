package trace

import (
	"encoding/json"
	"fmt"
)

// Outcome marks whether a terminal step reached the success condition.
type Outcome int

const (
	Pending Outcome = iota
	Success
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "pending"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pending":
		*o = Pending
	case "success":
		*o = Success
	case "failure":
		*o = Failure
	default:
		return fmt.Errorf("trace: unknown outcome %q", b)
	}
	return nil
}

// Step is one unit of algorithm progress. Payload maps and slices are owned
// by the trace and shared by every copy of it, cached ones included; treat
// them as read-only.
type Step[P any] struct {
	Index    int     `json:"index"`
	Payload  P       `json:"payload"`
	Terminal bool    `json:"terminal"`
	Outcome  Outcome `json:"outcome"`
}

// Trace is an immutable, non-empty sequence of steps.
type Trace[P any] struct {
	steps []Step[P]
}

// Generator produces the trace of one problem instance.
type Generator[I, P any] func(I) Trace[P]

func (t Trace[P]) Len() int { return len(t.steps) }

// At returns the step at i, clamped to [0, Len()-1].
func (t Trace[P]) At(i int) Step[P] {
	if len(t.steps) == 0 {
		return Step[P]{Terminal: true, Outcome: Failure}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(t.steps) {
		i = len(t.steps) - 1
	}
	return t.steps[i]
}

func (t Trace[P]) Last() Step[P] { return t.At(len(t.steps) - 1) }

// Result is the outcome carried by the terminal step.
func (t Trace[P]) Result() Outcome { return t.Last().Outcome }

// Steps returns a copy of the step slice. Payloads are not deep-copied.
func (t Trace[P]) Steps() []Step[P] {
	out := make([]Step[P], len(t.steps))
	copy(out, t.steps)
	return out
}

func (t Trace[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Steps  []Step[P] `json:"steps"`
		Result Outcome   `json:"result"`
	}{t.steps, t.Result()})
}

// builder accumulates steps during generation. Only the finishing calls may
// set Terminal, so every trace ends with exactly one terminal step.
type builder[P any] struct {
	steps []Step[P]
}

func (b *builder[P]) emit(p P) int {
	idx := len(b.steps)
	b.steps = append(b.steps, Step[P]{Index: idx, Payload: p, Outcome: Pending})
	return idx
}

// stop appends a terminal step carrying p.
func (b *builder[P]) stop(p P, o Outcome) Trace[P] {
	b.emit(p)
	return b.finish(o, p)
}

// finish marks the last emitted step terminal. fallback becomes a synthetic
// step when nothing was emitted.
func (b *builder[P]) finish(o Outcome, fallback P) Trace[P] {
	if len(b.steps) == 0 {
		b.emit(fallback)
	}
	last := &b.steps[len(b.steps)-1]
	last.Terminal = true
	last.Outcome = o
	return Trace[P]{steps: b.steps}
}
