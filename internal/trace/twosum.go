package trace

// TwoSumInput is one Two Sum problem instance.
type TwoSumInput struct {
	Nums   []int `json:"nums" yaml:"nums"`
	Target int   `json:"target" yaml:"target"`
}

// TwoSumStep records one element examined by the hash-map scan.
type TwoSumStep struct {
	// Current is the index being examined, -1 on the synthetic empty-input step.
	Current    int `json:"current"`
	Value      int `json:"value"`
	Complement int `json:"complement"`
	// Seen is the value->index map as it stands after this step.
	Seen map[int]int `json:"seen"`
	// Pair holds (earlier, current) indices on the found step. Because one step
	// is emitted per element, Pair[0] is also the step index of the match.
	Pair  [2]int `json:"pair"`
	Found bool   `json:"found"`
}

var noPair = [2]int{-1, -1}

// TwoSum traces the single-pass hash-map solution. The trace length never
// exceeds len(nums) for non-empty input: when no pair exists the last
// examined element's step becomes the terminal Failure step.
func TwoSum(nums []int, target int) Trace[TwoSumStep] {
	var b builder[TwoSumStep]
	seen := make(map[int]int, len(nums))

	for i, v := range nums {
		complement := target - v
		if j, ok := seen[complement]; ok {
			return b.stop(TwoSumStep{
				Current:    i,
				Value:      v,
				Complement: complement,
				Seen:       cloneSeen(seen),
				Pair:       [2]int{j, i},
				Found:      true,
			}, Success)
		}
		seen[v] = i
		b.emit(TwoSumStep{
			Current:    i,
			Value:      v,
			Complement: complement,
			Seen:       cloneSeen(seen),
			Pair:       noPair,
		})
	}

	return b.finish(Failure, TwoSumStep{Current: -1, Seen: map[int]int{}, Pair: noPair})
}

// TwoSumTrace adapts TwoSum to the Generator shape.
func TwoSumTrace(in TwoSumInput) Trace[TwoSumStep] {
	return TwoSum(in.Nums, in.Target)
}

// TwoSumPair returns the indices referenced by the terminal step.
func TwoSumPair(t Trace[TwoSumStep]) (a, b int, ok bool) {
	last := t.Last()
	if last.Outcome != Success {
		return -1, -1, false
	}
	return last.Payload.Pair[0], last.Payload.Pair[1], true
}

func cloneSeen(m map[int]int) map[int]int {
	c := make(map[int]int, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
