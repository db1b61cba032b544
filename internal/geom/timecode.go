package geom

import (
	"fmt"
	"math"
)

// FormatTimecode renders a timeline position as M:SS for ruler and clip
// labels. Negative inputs render as 0:00.
func FormatTimecode(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	whole := int(seconds)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}
