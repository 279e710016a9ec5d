// Package counts converts between X's compact engagement counts ("1.2K")
// and plain integers.
package counts

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// compactCount matches a decimal number with an optional magnitude suffix.
// Anything else (commas, currency, empty strings) is treated as zero.
var compactCount = regexp.MustCompile(`^([0-9.]+)([km]?)$`)

// Parse converts strings like "1.2K", "50M", or "423" to integers.
// Unparseable input yields 0.
func Parse(s string) int {
	cleaned := strings.ToLower(strings.TrimSpace(s))

	m := compactCount.FindStringSubmatch(cleaned)
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	switch m[2] {
	case "k":
		value *= 1_000
	case "m":
		value *= 1_000_000
	}

	return int(math.Floor(value))
}

// Format renders an integer in X's compact style: 1500 -> "1.5K",
// 2300000 -> "2.3M", 42 -> "42". Format is lossy, so it is not an
// inverse of Parse.
func Format(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}
