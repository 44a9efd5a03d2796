package experiment

import (
	"fmt"
	"strings"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/trace"
)

// traceCaches memoizes traces per instance, so replaying or re-exporting
// the same input skips regeneration.
type traceCaches struct {
	twoSum     *trace.Cache[trace.TwoSumInput, trace.TwoSumStep]
	palindrome *trace.Cache[string, trace.PalindromeStep]
	perceptron *trace.Cache[trace.PerceptronInput, trace.PerceptronStep]
}

func newTraceCaches() *traceCaches {
	return &traceCaches{
		twoSum:     trace.NewCache(trace.TwoSumTrace, func(in trace.TwoSumInput) string { return fmt.Sprint(in) }, 32),
		palindrome: trace.NewCache(trace.ValidPalindrome, func(s string) string { return s }, 32),
		perceptron: trace.NewCache(trace.PerceptronTrace, func(in trace.PerceptronInput) string { return fmt.Sprintf("%+v", in) }, 8),
	}
}

func (r *Registry) twoSum(cfg *config.Config) (TraceView, error) {
	if err := validateNums(cfg.TwoSum.Nums); err != nil {
		return nil, err
	}
	in := trace.TwoSumInput{
		Nums:   append([]int(nil), cfg.TwoSum.Nums...),
		Target: cfg.TwoSum.Target,
	}
	return newTwoSumView(in, r.traces.twoSum.Generate(in)), nil
}

func (r *Registry) palindrome(cfg *config.Config) (TraceView, error) {
	text := cfg.Palindrome.Text
	if err := validateText(text); err != nil {
		return nil, err
	}
	return newPalindromeView(text, r.traces.palindrome.Generate(text)), nil
}

func (r *Registry) perceptron(cfg *config.Config) (TraceView, error) {
	gate := strings.ToLower(cfg.Perceptron.Gate)
	samples := trace.LogicGate(gate)
	if samples == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGate, cfg.Perceptron.Gate)
	}
	in := trace.PerceptronInput{Samples: samples, Config: cfg.Perceptron.PerceptronConfig}
	return newPerceptronView(in, r.traces.perceptron.Generate(in)), nil
}
