package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR formats an amount in rupees as "₹12,34,567", rounding to whole rupees.
// Uses Indian digit grouping: the last three digits, then groups of two.
func FormatINR(amount float64) string {
	rounded := int64(math.Round(amount))
	neg := rounded < 0
	if neg {
		rounded = -rounded
	}

	s := strconv.FormatInt(rounded, 10)
	prefix := "₹"
	if neg {
		prefix = "-₹"
	}
	if len(s) <= 3 {
		return prefix + s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	// Pre-allocate: digits + separators + symbol
	b.Grow(len(s) + len(s)/2 + len(prefix))
	b.WriteString(prefix)

	// Insert separators from the left, in pairs.
	rem := len(head) % 2
	if rem == 0 {
		rem = 2
	}
	b.WriteString(head[:rem])
	for i := rem; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)

	return b.String()
}
