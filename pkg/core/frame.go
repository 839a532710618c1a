package core

import (
	"fmt"
	"image"
)

// Frame is the grid of pixel colors produced by one render pass.
// Pixels is indexed [row][col], row 0 first.
type Frame struct {
	Width  int
	Height int
	Pixels [][]Color
}

// NewFrame allocates a black frame of the given size
func NewFrame(width, height int) *Frame {
	pixels := make([][]Color, height)
	for row := range pixels {
		pixels[row] = make([]Color, width)
	}
	return &Frame{Width: width, Height: height, Pixels: pixels}
}

// FrameFromRows wraps an existing row-major grid. The grid must be
// non-empty and rectangular.
func FrameFromRows(rows [][]Color) (*Frame, error) {
	f := &Frame{Height: len(rows), Pixels: rows}
	if len(rows) > 0 {
		f.Width = len(rows[0])
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// At returns the color at (row, col)
func (f *Frame) At(row, col int) Color {
	return f.Pixels[row][col]
}

// Set stores the color at (row, col)
func (f *Frame) Set(row, col int, c Color) {
	f.Pixels[row][col] = c
}

// Validate checks that the frame is non-empty and every row has Width pixels
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("nil frame: %w", ErrConfiguration)
	}
	if f.Width < 1 || f.Height < 1 {
		return fmt.Errorf("frame is %dx%d, need at least 1x1: %w", f.Width, f.Height, ErrConfiguration)
	}
	if len(f.Pixels) != f.Height {
		return fmt.Errorf("frame has %d rows, header says %d: %w", len(f.Pixels), f.Height, ErrConfiguration)
	}
	for row, pixels := range f.Pixels {
		if len(pixels) != f.Width {
			return fmt.Errorf("row %d has %d pixels, want %d: %w", row, len(pixels), f.Width, ErrConfiguration)
		}
	}
	return nil
}

// Equal reports whether two frames have identical size and pixels
func (f *Frame) Equal(other *Frame) bool {
	if f.Width != other.Width || f.Height != other.Height {
		return false
	}
	for row := range f.Pixels {
		for col := range f.Pixels[row] {
			if f.Pixels[row][col] != other.Pixels[row][col] {
				return false
			}
		}
	}
	return true
}

// Image converts the frame to an opaque RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			img.SetRGBA(col, row, f.Pixels[row][col].RGBA())
		}
	}
	return img
}
