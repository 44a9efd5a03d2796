package trace_test

import (
	"fmt"

	"github.com/san-kum/allvis/internal/trace"
)

func ExampleTwoSum() {
	tr := trace.TwoSum([]int{2, 7, 11, 15}, 9)
	for _, s := range tr.Steps() {
		fmt.Printf("step %d: nums[%d]=%d need %d terminal=%v\n",
			s.Index, s.Payload.Current, s.Payload.Value, s.Payload.Complement, s.Terminal)
	}
	a, b, ok := trace.TwoSumPair(tr)
	fmt.Println(a, b, ok)
	// Output:
	// step 0: nums[0]=2 need 7 terminal=false
	// step 1: nums[1]=7 need 2 terminal=true
	// 0 1 true
}

func ExampleValidPalindrome() {
	tr := trace.ValidPalindrome("race a car")
	last := tr.Last().Payload
	fmt.Printf("%v at %d/%d (%c vs %c)\n", tr.Result(), last.Left, last.Right, last.LeftChar, last.RightChar)
	// Output:
	// failure at 3/5 (e vs a)
}
