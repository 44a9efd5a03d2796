package trace_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/san-kum/allvis/internal/trace"
)

func genNums() gopter.Gen {
	return gen.SliceOf(gen.IntRange(-50, 50))
}

func TestTwoSum_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("generation is deterministic", prop.ForAll(
		func(nums []int, target int) bool {
			return reflect.DeepEqual(trace.TwoSum(nums, target), trace.TwoSum(nums, target))
		},
		genNums(), gen.IntRange(-100, 100),
	))

	properties.Property("trace is non-empty and bounded by input size", prop.ForAll(
		func(nums []int, target int) bool {
			n := trace.TwoSum(nums, target).Len()
			if len(nums) == 0 {
				return n == 1
			}
			return n >= 1 && n <= len(nums)
		},
		genNums(), gen.IntRange(-100, 100),
	))

	properties.Property("success references a valid pair, failure means none exists", prop.ForAll(
		func(nums []int, target int) bool {
			a, b, ok := trace.TwoSumPair(trace.TwoSum(nums, target))
			if ok {
				return a != b && a < b && nums[a]+nums[b] == target
			}
			for i := range nums {
				for j := i + 1; j < len(nums); j++ {
					if nums[i]+nums[j] == target {
						return false
					}
				}
			}
			return true
		},
		genNums(), gen.IntRange(-100, 100),
	))

	properties.TestingRun(t)
}

func TestValidPalindrome_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("mirrored strings are palindromes", prop.ForAll(
		func(s string) bool {
			rs := []rune(s)
			mirrored := make([]rune, 0, 2*len(rs))
			mirrored = append(mirrored, rs...)
			for i := len(rs) - 1; i >= 0; i-- {
				mirrored = append(mirrored, rs[i])
			}
			return trace.IsPalindrome(trace.ValidPalindrome(string(mirrored)))
		},
		gen.AlphaString(),
	))

	properties.Property("exactly one terminal step, in last position", prop.ForAll(
		func(s string) bool {
			tr := trace.ValidPalindrome(s)
			for i, step := range tr.Steps() {
				if step.Terminal != (i == tr.Len()-1) {
					return false
				}
			}
			return tr.Len() >= 1
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
