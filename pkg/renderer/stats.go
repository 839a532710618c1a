package renderer

import (
	"time"

	"github.com/df07/go-raycaster/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	LitPixels   int           // Pixels with any non-zero channel
	Workers     int           // Goroutines used for the pass
	Elapsed     time.Duration // Wall time of the pass
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of frame in [0, 1]
func CalculateAverageLuminance(frame *core.Frame) float64 {
	if frame.Width == 0 || frame.Height == 0 {
		return 0
	}

	total := 0.0
	for _, row := range frame.Pixels {
		for _, c := range row {
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(frame.Width*frame.Height)
}

func countLitPixels(frame *core.Frame) int {
	lit := 0
	for _, row := range frame.Pixels {
		for _, c := range row {
			if !c.IsBlack() {
				lit++
			}
		}
	}
	return lit
}
