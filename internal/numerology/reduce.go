package numerology

import (
	"strings"
)

const (
	// MaxArcana is the upper bound for life-matrix points.
	MaxArcana = 22
	// MaxDigit is the upper bound for money-code digits.
	MaxDigit = 9
)

// Reduce22 folds n by digit sums until it is at most 22
func Reduce22(n int) int {
	return reduceTo(n, MaxArcana)
}

// Reduce9 folds n by digit sums until it is a single digit
func Reduce9(n int) int {
	return reduceTo(n, MaxDigit)
}

// reduceTo treats negative input as 0.
func reduceTo(n, limit int) int {
	if n <= 0 {
		return 0
	}
	for n > limit {
		n = DigitSum(n)
	}
	return n
}

// DigitSum returns the sum of the decimal digits of |n|
func DigitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// Coerce converts loosely typed input to a reducer operand. It reads an
// optional sign followed by the leading run of digits, so "12abc" is 12.
// Unparsable and negative input yields 0. Digit runs too long for an int are
// returned as their digit sum, which reduces to the same point.
func Coerce(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	digits := strings.TrimLeft(s[:end], "0")
	if neg || digits == "" {
		return 0
	}
	n, sum := 0, 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		n = n*10 + d
		sum += d
	}
	if len(digits) > maxIntDigits {
		return sum
	}
	return n
}

// maxIntDigits is the longest digit run that always fits an int64.
const maxIntDigits = 18

// ReduceString22 is Reduce22 over coerced input.
func ReduceString22(s string) int {
	return Reduce22(Coerce(s))
}
