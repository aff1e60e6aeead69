package tui

import (
	"fmt"
	"math"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// clamp keeps v inside [lo, hi].
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// formatMeters prints a distance with a unit suited to its size.
func formatMeters(d float64) string {
	if d >= 1000 {
		return fmt.Sprintf("%.2fkm", d/1000)
	}
	return fmt.Sprintf("%.0fm", math.Round(d))
}
