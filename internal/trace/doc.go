// Package trace turns an algorithm's execution over one problem instance into
// a finite, ordered, replayable sequence of steps suitable for narration.
//
// Every generator in this package is pure and total:
//
//   - the same instance always yields a deep-equal [Trace];
//   - a trace is never empty, even for degenerate input;
//   - exactly one step, the last, is terminal and carries the [Outcome].
//
// Steps are emitted in the order the algorithm touches state. A negative
// result (no pair, not a palindrome, no convergence) is a normal terminal
// step with [Failure], not an error.
//
// Generators shipped here:
//
//   - [TwoSum]: hash-map linear scan, one step per element examined
//   - [ValidPalindrome]: two-pointer convergence, one step per comparison
//   - [Perceptron]: online perceptron learning, one step per sample shown
//
// Payloads may hold slices and maps shared between [Trace.At] calls; callers
// treat them as read-only.
package trace
