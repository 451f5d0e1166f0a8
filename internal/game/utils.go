package game

import (
	"fmt"
	"time"

	"github.com/iburimskiy/particle-field/internal/field"
)

// pointerWithin returns the position as a pointer, or nil when it lies
// outside the width x height surface.
func pointerWithin(x, y, width, height int) *field.Vec {
	if x < 0 || y < 0 || x >= width || y >= height {
		return nil
	}
	return &field.Vec{X: float64(x), Y: float64(y)}
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
