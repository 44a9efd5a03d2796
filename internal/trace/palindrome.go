package trace

import "unicode"

// PalindromeStep records one two-pointer comparison. Positions are rune
// offsets into the original string.
type PalindromeStep struct {
	Left      int  `json:"left"`
	Right     int  `json:"right"`
	LeftChar  rune `json:"left_char"`
	RightChar rune `json:"right_char"`
	Match     bool `json:"match"`
	// Skipped lists non-alphanumeric offsets passed over before this comparison.
	Skipped []int `json:"skipped,omitempty"`
}

// ValidPalindrome traces the case-insensitive two-pointer check over
// alphanumeric characters. The first mismatch is terminal Failure and
// carries the divergence positions. A string without alphanumerics is a
// palindrome and yields a single synthetic Success step.
func ValidPalindrome(s string) Trace[PalindromeStep] {
	var b builder[PalindromeStep]
	rs := []rune(s)
	l, r := 0, len(rs)-1

	for l < r {
		var skipped []int
		for l < r && !isAlnum(rs[l]) {
			skipped = append(skipped, l)
			l++
		}
		for l < r && !isAlnum(rs[r]) {
			skipped = append(skipped, r)
			r--
		}
		if l >= r {
			break
		}

		step := PalindromeStep{
			Left:      l,
			Right:     r,
			LeftChar:  rs[l],
			RightChar: rs[r],
			Match:     unicode.ToLower(rs[l]) == unicode.ToLower(rs[r]),
			Skipped:   skipped,
		}
		if !step.Match {
			return b.stop(step, Failure)
		}
		b.emit(step)
		l++
		r--
	}

	return b.finish(Success, PalindromeStep{Left: -1, Right: -1, Match: true})
}

// IsPalindrome reports the final result of a palindrome trace.
func IsPalindrome(t Trace[PalindromeStep]) bool {
	return t.Result() == Success
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
