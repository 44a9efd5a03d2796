package viz

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/experiment"
	"github.com/san-kum/allvis/internal/physics"
	"github.com/san-kum/allvis/internal/trace"
)

// TraceFrame renders step i of a trace as text rows. pos is the eased
// cursor position used to slide pointer markers between steps; pass
// float64(i) for a still frame.
func TraceFrame(st Styles, tv experiment.TraceView, i int, pos float64) string {
	var body string
	switch in := tv.Input().(type) {
	case trace.TwoSumInput:
		body = twoSumRows(st, in, tv, i, pos)
	case string:
		body = palindromeRows(st, in, tv, i, pos)
	case trace.PerceptronInput:
		body = perceptronRows(st, in, tv, i)
	}
	return body + "\n" + outcomeLine(st, tv, i) + "\n" + st.Muted.Render(tv.Narrate(i))
}

func outcomeLine(st Styles, tv experiment.TraceView, i int) string {
	head := fmt.Sprintf("step %d/%d", i+1, tv.Len())
	switch tv.Outcome(i) {
	case trace.Success:
		return head + "  " + st.Success.Render("SUCCESS")
	case trace.Failure:
		return head + "  " + st.Failure.Render("FAILURE")
	}
	return head
}

// lerpAt interpolates a per-step scalar at a fractional cursor position.
func lerpAt(tv experiment.TraceView, pos float64, fn func(p any) float64) float64 {
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	a := fn(tv.Payload(lo))
	if frac == 0 {
		return a
	}
	b := fn(tv.Payload(lo + 1))
	return a + (b-a)*frac
}

// caretRow places marks under cells of the given width. Marks at negative
// positions are dropped.
func caretRow(cell int, marks map[float64]string) string {
	width := 0
	for at := range marks {
		width = max(width, int(at*float64(cell))+cell)
	}
	row := []rune(strings.Repeat(" ", width))
	for at, mark := range marks {
		if at < 0 {
			continue
		}
		x := int(math.Round(at*float64(cell))) + cell/2
		for k, r := range mark {
			if x+k < len(row) {
				row[x+k] = r
			}
		}
	}
	return strings.TrimRight(string(row), " ")
}

func twoSumRows(st Styles, in trace.TwoSumInput, tv experiment.TraceView, i int, pos float64) string {
	step := tv.Payload(i).(trace.TwoSumStep)
	cell := 2
	for _, v := range in.Nums {
		cell = max(cell, len(strconv.Itoa(v))+2)
	}

	cells := make([]string, len(in.Nums))
	for k, v := range in.Nums {
		text := fmt.Sprintf("%*d", cell-1, v) + " "
		switch {
		case step.Found && (k == step.Pair[0] || k == step.Pair[1]):
			cells[k] = st.Success.Render(text)
		case k == step.Current:
			cells[k] = st.Focus.Render(text)
		case k < step.Current:
			cells[k] = st.Value.Render(text)
		default:
			cells[k] = st.Muted.Render(text)
		}
	}

	at := lerpAt(tv, pos, func(p any) float64 { return float64(p.(trace.TwoSumStep).Current) })
	marks := map[float64]string{at: "^"}
	if step.Found {
		marks[float64(step.Pair[0])] = "*"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", st.Label.Render("target"), in.Target)
	b.WriteString(strings.Join(cells, "") + "\n")
	b.WriteString(st.Accent.Render(caretRow(cell, marks)) + "\n")
	if step.Current >= 0 {
		fmt.Fprintf(&b, "%s %d - %d = %d\n", st.Label.Render("complement"), in.Target, step.Value, step.Complement)
	}
	fmt.Fprintf(&b, "%s %s\n", st.Label.Render("seen"), seenRow(step.Seen))
	return b.String()
}

func seenRow(m map[int]int) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for k, v := range keys {
		parts[k] = fmt.Sprintf("%d→%d", v, m[v])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func palindromeRows(st Styles, text string, tv experiment.TraceView, i int, pos float64) string {
	step := tv.Payload(i).(trace.PalindromeStep)
	rs := []rune(text)
	skipped := make(map[int]bool)
	for k := 0; k <= i; k++ {
		for _, s := range tv.Payload(k).(trace.PalindromeStep).Skipped {
			skipped[s] = true
		}
	}

	cells := make([]string, len(rs))
	for k, r := range rs {
		ch := string(r)
		if r == ' ' {
			ch = "·"
		}
		cell := " " + ch
		switch {
		case k == step.Left || k == step.Right:
			if step.Match {
				cells[k] = st.Success.Render(cell)
			} else {
				cells[k] = st.Failure.Render(cell)
			}
		case skipped[k]:
			cells[k] = st.Muted.Render(cell)
		case step.Left >= 0 && (k < step.Left || k > step.Right):
			cells[k] = st.Value.Render(cell)
		default:
			cells[k] = st.Muted.Render(cell)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(cells, "") + "\n")
	if step.Left >= 0 {
		l := lerpAt(tv, pos, func(p any) float64 { return float64(p.(trace.PalindromeStep).Left) })
		r := lerpAt(tv, pos, func(p any) float64 { return float64(p.(trace.PalindromeStep).Right) })
		b.WriteString(st.Accent.Render(caretRow(2, map[float64]string{l: "L", r: "R"})) + "\n")
	}
	return b.String()
}

func perceptronRows(st Styles, in trace.PerceptronInput, tv experiment.TraceView, i int) string {
	step := tv.Payload(i).(trace.PerceptronStep)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d   %s %d\n", st.Label.Render("epoch"), step.Epoch+1, st.Label.Render("errors"), step.EpochErrors)
	for k, s := range in.Samples {
		pred := step.Predict(s.Features)
		mark := st.Success.Render("✓")
		if pred != s.Label {
			mark = st.Failure.Render("✗")
		}
		line := fmt.Sprintf("%v → %d (label %d) %s", s.Features, pred, s.Label, mark)
		if k == step.Sample {
			line = st.Focus.Render("▸ ") + line
			if step.Updated {
				line += " " + st.Warning.Render("update")
			}
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "%s w=[%s] b=%.3f\n", st.Label.Render("weights"), joinFloats(step.Weights), step.Bias)
	fmt.Fprintf(&b, "%s %s %.0f%%\n", st.Label.Render("accuracy"), bar(step.Accuracy, 20), 100*step.Accuracy)
	if len(step.Weights) == 2 {
		c := NewCanvas(16, 6)
		DrawDecision(c, step.Weights, step.Bias, in.Samples)
		b.WriteString(c.String())
	}
	return b.String()
}

// DrawDecision plots two-feature samples over [-0.5, 1.5]² with the line
// w·x + b = 0. Positive samples are filled.
func DrawDecision(c *Canvas, w []float64, bias float64, samples []trace.Sample) {
	vp := Fit(c, physics.Bounds{MinX: -0.5, MinY: -0.5, MaxX: 1.5, MaxY: 1.5}, false)
	if len(w) == 2 && (w[0] != 0 || w[1] != 0) {
		var a, z dynamo.Vec2
		if math.Abs(w[1]) > math.Abs(w[0]) {
			a = dynamo.V(-0.5, -(bias+w[0]*-0.5)/w[1])
			z = dynamo.V(1.5, -(bias+w[0]*1.5)/w[1])
		} else {
			a = dynamo.V(-(bias+w[1]*-0.5)/w[0], -0.5)
			z = dynamo.V(-(bias+w[1]*1.5)/w[0], 1.5)
		}
		x0, y0 := vp.Project(a)
		x1, y1 := vp.Project(z)
		c.DrawLine(x0, y0, x1, y1)
	}
	for _, s := range samples {
		if len(s.Features) < 2 {
			continue
		}
		x, y := vp.Project(dynamo.V(s.Features[0], s.Features[1]))
		c.Circle(x, y, 1, s.Label == 1)
	}
}

func joinFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'f', 3, 64)
	}
	return strings.Join(parts, " ")
}

// bar is a plain progress bar for a fraction in [0, 1].
func bar(frac float64, width int) string {
	filled := min(max(int(frac*float64(width)), 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
