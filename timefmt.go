package wavetag

import (
	"fmt"
	"math"
)

// FormatTick formats a time axis tick value. When the distance between ticks
// is below one second, milliseconds are shown (MM:SS.mmm), otherwise MM:SS.
// Negative times are shown as zero.
func FormatTick(seconds, spacing float64) string {
	v := max(0, seconds)
	minutes := int(v / 60)
	secs := int(math.Mod(v, 60))
	if spacing < 1 {
		ms := int(math.Mod(v*1000, 1000))
		return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, ms)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatDuration formats a time as MM:SS.cc, as used in the annotation list and
// in status messages.
func FormatDuration(seconds float64) string {
	v := max(0, seconds)
	minutes := int(v / 60)
	secs := int(math.Mod(v, 60))
	cs := int(math.Mod(v, 1) * 100)
	return fmt.Sprintf("%02d:%02d.%02d", minutes, secs, cs)
}
