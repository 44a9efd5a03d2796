package experiment

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/allvis/internal/trace"
)

// TraceView erases a trace's payload type so hosts can step through any
// discrete visualizer the same way.
type TraceView interface {
	Visualizer() string
	Len() int
	Result() trace.Outcome
	// Input is the instance the trace was generated from.
	Input() any
	// Payload returns the typed payload of step i, clamped like trace.At.
	Payload(i int) any
	Terminal(i int) bool
	Outcome(i int) trace.Outcome
	// Narrate describes step i in one line.
	Narrate(i int) string
	Header() []string
	Row(i int) []string
	json.Marshaler
}

type view[I, P any] struct {
	name    string
	input   I
	tr      trace.Trace[P]
	narrate func(I, trace.Step[P]) string
	header  []string
	row     func(P) []string
}

func (v *view[I, P]) Visualizer() string          { return v.name }
func (v *view[I, P]) Len() int                    { return v.tr.Len() }
func (v *view[I, P]) Result() trace.Outcome       { return v.tr.Result() }
func (v *view[I, P]) Input() any                  { return v.input }
func (v *view[I, P]) Payload(i int) any           { return v.tr.At(i).Payload }
func (v *view[I, P]) Terminal(i int) bool         { return v.tr.At(i).Terminal }
func (v *view[I, P]) Outcome(i int) trace.Outcome { return v.tr.At(i).Outcome }
func (v *view[I, P]) Narrate(i int) string        { return v.narrate(v.input, v.tr.At(i)) }

func (v *view[I, P]) Header() []string {
	return append([]string{"index", "terminal", "outcome"}, v.header...)
}

func (v *view[I, P]) Row(i int) []string {
	s := v.tr.At(i)
	return append([]string{
		strconv.Itoa(s.Index),
		strconv.FormatBool(s.Terminal),
		s.Outcome.String(),
	}, v.row(s.Payload)...)
}

func (v *view[I, P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Visualizer string         `json:"visualizer"`
		Input      I              `json:"input"`
		Result     trace.Outcome  `json:"result"`
		Steps      trace.Trace[P] `json:"steps"`
	}{v.name, v.input, v.tr.Result(), v.tr})
}

func newTwoSumView(in trace.TwoSumInput, tr trace.Trace[trace.TwoSumStep]) TraceView {
	return &view[trace.TwoSumInput, trace.TwoSumStep]{
		name:    "twosum",
		input:   in,
		tr:      tr,
		narrate: narrateTwoSum,
		header:  []string{"current", "value", "complement", "seen", "pair"},
		row: func(p trace.TwoSumStep) []string {
			return []string{
				strconv.Itoa(p.Current),
				strconv.Itoa(p.Value),
				strconv.Itoa(p.Complement),
				formatSeen(p.Seen),
				fmt.Sprintf("%d %d", p.Pair[0], p.Pair[1]),
			}
		},
	}
}

func narrateTwoSum(in trace.TwoSumInput, s trace.Step[trace.TwoSumStep]) string {
	p := s.Payload
	switch {
	case p.Current < 0:
		return "no numbers to scan: no pair"
	case p.Found:
		return fmt.Sprintf("nums[%d]=%d needs %d, seen at index %d: pair (%d, %d)",
			p.Current, p.Value, p.Complement, p.Pair[0], p.Pair[0], p.Pair[1])
	case s.Outcome == trace.Failure:
		return fmt.Sprintf("nums[%d]=%d needs %d, not seen; scan exhausted, no pair sums to %d",
			p.Current, p.Value, p.Complement, in.Target)
	}
	return fmt.Sprintf("nums[%d]=%d needs %d, not seen; remember %d at %d",
		p.Current, p.Value, p.Complement, p.Value, p.Current)
}

// formatSeen prints a value->index map in value order.
func formatSeen(m map[int]int) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d:%d", k, m[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func newPalindromeView(text string, tr trace.Trace[trace.PalindromeStep]) TraceView {
	return &view[string, trace.PalindromeStep]{
		name:    "palindrome",
		input:   text,
		tr:      tr,
		narrate: narratePalindrome,
		header:  []string{"left", "right", "left_char", "right_char", "match", "skipped"},
		row: func(p trace.PalindromeStep) []string {
			skipped := make([]string, len(p.Skipped))
			for i, k := range p.Skipped {
				skipped[i] = strconv.Itoa(k)
			}
			return []string{
				strconv.Itoa(p.Left),
				strconv.Itoa(p.Right),
				string(p.LeftChar),
				string(p.RightChar),
				strconv.FormatBool(p.Match),
				strings.Join(skipped, " "),
			}
		},
	}
}

func narratePalindrome(_ string, s trace.Step[trace.PalindromeStep]) string {
	p := s.Payload
	if p.Left < 0 {
		return "nothing left to compare: palindrome"
	}
	var b strings.Builder
	if n := len(p.Skipped); n > 0 {
		fmt.Fprintf(&b, "skip %d non-alphanumeric, ", n)
	}
	fmt.Fprintf(&b, "compare [%d]=%q with [%d]=%q", p.Left, p.LeftChar, p.Right, p.RightChar)
	switch {
	case !p.Match:
		b.WriteString(": mismatch, not a palindrome")
	case s.Terminal:
		b.WriteString(": match, pointers meet, palindrome")
	default:
		b.WriteString(": match")
	}
	return b.String()
}

func newPerceptronView(in trace.PerceptronInput, tr trace.Trace[trace.PerceptronStep]) TraceView {
	return &view[trace.PerceptronInput, trace.PerceptronStep]{
		name:    "perceptron",
		input:   in,
		tr:      tr,
		narrate: narratePerceptron,
		header:  []string{"epoch", "sample", "label", "prediction", "updated", "weights", "bias", "accuracy"},
		row: func(p trace.PerceptronStep) []string {
			return []string{
				strconv.Itoa(p.Epoch),
				strconv.Itoa(p.Sample),
				strconv.Itoa(p.Label),
				strconv.Itoa(p.Prediction),
				strconv.FormatBool(p.Updated),
				formatFloats(p.Weights),
				strconv.FormatFloat(p.Bias, 'g', 6, 64),
				strconv.FormatFloat(p.Accuracy, 'f', 2, 64),
			}
		},
	}
}

func narratePerceptron(_ trace.PerceptronInput, s trace.Step[trace.PerceptronStep]) string {
	p := s.Payload
	if p.Sample < 0 {
		return "no samples: nothing to learn"
	}
	verb := "correct, weights kept"
	if p.Updated {
		verb = fmt.Sprintf("wrong, update to w=%s b=%.3g", formatFloats(p.Weights), p.Bias)
	}
	line := fmt.Sprintf("epoch %d sample %d %v: predicted %d, label %d, %s (accuracy %.0f%%)",
		p.Epoch, p.Sample, p.Input, p.Prediction, p.Label, verb, 100*p.Accuracy)
	switch s.Outcome {
	case trace.Success:
		line += "; epoch without errors, converged"
	case trace.Failure:
		line += "; epochs exhausted"
	}
	return line
}

func formatFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'g', 4, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
