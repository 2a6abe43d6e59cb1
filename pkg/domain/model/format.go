package model

import (
	"fmt"
	"math"
	"strconv"
)

// FormatNumber prints whole numbers without decimals and everything else
// with two decimals: 100 -> "100", 33.333 -> "33.33".
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatMinsSecs renders milliseconds as "<m>m <s>s", dropping the remainder
func FormatMinsSecs(durationMS float64) string {
	secs := math.Floor(durationMS / 1000)
	mins := math.Floor(secs / 60)
	secs -= mins * 60
	return fmt.Sprintf("%.0fm %.0fs", mins, secs)
}

// FormatDuration renders milliseconds as "61500 ms (1m 1s)"
func FormatDuration(durationMS float64) string {
	return strconv.FormatFloat(durationMS, 'f', 0, 64) + " ms (" + FormatMinsSecs(durationMS) + ")"
}
