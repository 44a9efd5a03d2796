package experiment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrUnknownVisualizer = errors.New("experiment: unknown visualizer")
	ErrWrongKind         = errors.New("experiment: visualizer does not support this mode")
	ErrTooFewNumbers     = errors.New("experiment: need at least two numbers")
	ErrNotANumber        = errors.New("experiment: not a number")
	ErrEmptyText         = errors.New("experiment: text is empty")
	ErrUnknownGate       = errors.New("experiment: unknown logic gate")
	ErrNoBodies          = errors.New("experiment: no bodies")
	ErrNoSources         = errors.New("experiment: no sources")
)

// ParseInts reads integers separated by commas and/or whitespace, as typed
// into an array field.
func ParseInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotANumber, f)
		}
		out = append(out, n)
	}
	return out, nil
}

func validateNums(nums []int) error {
	if len(nums) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewNumbers, len(nums))
	}
	return nil
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyText
	}
	return nil
}
